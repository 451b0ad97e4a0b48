package handler

import "github.com/MashaWaleed/Marketplace-React-Frontend/internal/cache"

// Cache keys for server resources. Search results live under the
// "products" prefix so invalidating it also covers every query.
func keyProducts(query string) cache.Key { return cache.K("products", query) }
func keyProduct(id string) cache.Key     { return cache.K("product", id) }

var (
	keyAllProducts       = cache.K("products")
	keySellingProducts   = cache.K("selling-products")
	keyPurchasedProducts = cache.K("purchased-products")
	keySoldProducts      = cache.K("sold-products")
	keyAnalytics         = cache.K("analytics")
	keyWallet            = cache.K("wallet")
	keyTransactions      = cache.K("transactions")
)
