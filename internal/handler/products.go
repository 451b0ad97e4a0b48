package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/api"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/cache"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/session"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/validate"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/view"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/apierror"
)

// ProductHandler serves the product list, details, purchase, and the
// seller CRUD pages.
type ProductHandler struct {
	backend  api.Backend
	sessions *session.Store
	cache    *cache.Store
	views    *view.View
}

func NewProductHandler(backend api.Backend, sessions *session.Store, store *cache.Store, views *view.View) *ProductHandler {
	return &ProductHandler{backend: backend, sessions: sessions, cache: store, views: views}
}

type homePage struct {
	Query    string
	Products []model.Product
	Error    string
}

type productPage struct {
	Product model.Product
	Error   string
}

type notFoundPage struct {
	Message string
}

type productForm struct {
	ID          string
	Name        string
	Description string
	Price       string
	PictureURL  string
	Errors      validate.Errors
	Alert       string
	Editing     bool
}

// Home lists products, optionally filtered by the q query parameter.
// Each search term gets its own cache entry.
func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	content := homePage{Query: query}

	products, err := cache.Fetch(r.Context(), h.cache, keyProducts(query), func(ctx context.Context) ([]model.Product, error) {
		return h.backend.SearchProducts(ctx, query)
	})
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		content.Error = apierror.Extract(err)
	} else {
		content.Products = products
	}

	h.views.Render(w, http.StatusOK, "home", pageData(w, r, h.sessions, "Products", "products", content))
}

// Details shows a single product with its buy action.
func (h *ProductHandler) Details(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := cache.Fetch(r.Context(), h.cache, keyProduct(id), func(ctx context.Context) (model.Product, error) {
		return h.backend.GetProduct(ctx, id)
	})
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		if apierror.IsNotFound(err) {
			h.views.Render(w, http.StatusNotFound, "not_found", pageData(w, r, h.sessions, "Not found", "",
				notFoundPage{Message: "This product does not exist or is no longer available."}))
			return
		}
		h.views.Render(w, http.StatusOK, "product", pageData(w, r, h.sessions, "Product", "", productPage{Error: apierror.Extract(err)}))
		return
	}

	h.views.Render(w, http.StatusOK, "product", pageData(w, r, h.sessions, product.Name, "product/"+id, productPage{Product: product}))
}

// Buy purchases the product and invalidates every listing the purchase
// can have changed: the catalog, the product itself, both ownership
// lists, and the analytics counters.
func (h *ProductHandler) Buy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.cache.Mutate(r.Context(), func(ctx context.Context) error {
		return h.backend.BuyProduct(ctx, id)
	}, keyAllProducts, keyProduct(id), keyPurchasedProducts, keySellingProducts, keyAnalytics)
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		view.SetFlash(w, "error", "Purchase failed", apierror.Extract(err))
		http.Redirect(w, r, "/products/"+id, http.StatusSeeOther)
		return
	}

	view.SetFlash(w, "success", "Purchase successful", "")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// AddForm renders an empty product form.
func (h *ProductHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "product_form", pageData(w, r, h.sessions, "Add Product", "", productForm{Errors: validate.Errors{}}))
}

// Add validates the form and creates the product.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form, product := parseProductForm(r)
	if !form.Errors.Valid() {
		h.views.Render(w, http.StatusUnprocessableEntity, "product_form", pageData(w, r, h.sessions, "Add Product", "", form))
		return
	}

	err := h.cache.Mutate(r.Context(), func(ctx context.Context) error {
		_, err := h.backend.CreateProduct(ctx, product)
		return err
	}, keyAllProducts, keySellingProducts, keyAnalytics)
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		form.Alert = apierror.Extract(err)
		h.views.Render(w, http.StatusOK, "product_form", pageData(w, r, h.sessions, "Add Product", "", form))
		return
	}

	view.SetFlash(w, "success", "Product added", "")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// EditForm renders the form pre-filled with the product's current
// values.
func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := cache.Fetch(r.Context(), h.cache, keyProduct(id), func(ctx context.Context) (model.Product, error) {
		return h.backend.GetProduct(ctx, id)
	})
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		if apierror.IsNotFound(err) {
			h.views.Render(w, http.StatusNotFound, "not_found", pageData(w, r, h.sessions, "Not found", "",
				notFoundPage{Message: "This product does not exist or is no longer available."}))
			return
		}
		h.views.Render(w, http.StatusOK, "product_form", pageData(w, r, h.sessions, "Edit Product", "",
			productForm{ID: id, Editing: true, Errors: validate.Errors{}, Alert: apierror.Extract(err)}))
		return
	}

	form := productForm{
		ID:          id,
		Name:        product.Name,
		Description: product.Description,
		Price:       strconv.FormatFloat(product.Price, 'f', -1, 64),
		PictureURL:  product.PictureURL,
		Errors:      validate.Errors{},
		Editing:     true,
	}
	h.views.Render(w, http.StatusOK, "product_form", pageData(w, r, h.sessions, "Edit Product", "", form))
}

// Update validates the form and saves the changes.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")

	form, product := parseProductForm(r)
	form.ID = id
	form.Editing = true
	if !form.Errors.Valid() {
		h.views.Render(w, http.StatusUnprocessableEntity, "product_form", pageData(w, r, h.sessions, "Edit Product", "", form))
		return
	}

	err := h.cache.Mutate(r.Context(), func(ctx context.Context) error {
		_, err := h.backend.UpdateProduct(ctx, id, product)
		return err
	}, keySellingProducts, keyProduct(id))
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		form.Alert = apierror.Extract(err)
		h.views.Render(w, http.StatusOK, "product_form", pageData(w, r, h.sessions, "Edit Product", "", form))
		return
	}

	view.SetFlash(w, "success", "Product updated", "")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// Delete removes one of the user's selling products.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.cache.Mutate(r.Context(), func(ctx context.Context) error {
		return h.backend.DeleteProduct(ctx, id)
	}, keySellingProducts, keyProduct(id))
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		view.SetFlash(w, "error", "Delete failed", apierror.Extract(err))
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	view.SetFlash(w, "success", "Product deleted", "")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func parseProductForm(r *http.Request) (productForm, model.Product) {
	form := productForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
		PictureURL:  r.PostFormValue("picture_url"),
		Errors:      validate.Errors{},
	}

	form.Errors.Check("name", validate.Required(form.Name, "Name"))
	form.Errors.Check("description", validate.Required(form.Description, "Description"))
	price, msg := validate.Price(form.Price)
	form.Errors.Check("price", msg)
	form.Errors.Check("picture_url", validate.Required(form.PictureURL, "Image URL"))

	product := model.Product{
		Name:        form.Name,
		Price:       price,
		PictureURL:  form.PictureURL,
		Description: form.Description,
	}
	return form, product
}
