package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"party-package-store/internal/middleware"
	"party-package-store/internal/models"
	"party-package-store/internal/repositories"
	"party-package-store/internal/services"
)

// In-memory repository fakes so handler tests can run the real service
// layer without a database.

type memUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (m *memUserRepo) Create(email, passwordHash, fullName, phone string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return nil, fmt.Errorf("email already registered: %w", models.ErrDuplicateEntry)
		}
	}
	user := &models.User{ID: m.nextID, Email: email, PasswordHash: passwordHash, FullName: fullName, Phone: phone, CreatedAt: time.Now()}
	m.nextID++
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserRepo) GetByID(id int) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *memUserRepo) SetAdmin(id int, isAdmin bool) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	return user, nil
}

func (m *memUserRepo) SetBanned(id int, isBanned bool) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	user.IsBanned = isBanned
	return user, nil
}

func (m *memUserRepo) List(limit, offset int) ([]*models.User, error) {
	var users []*models.User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

type memEventRepo struct {
	events map[int]*models.Event
	nextID int
}

func newMemEventRepo(events ...*models.Event) *memEventRepo {
	repo := &memEventRepo{events: make(map[int]*models.Event), nextID: 1}
	for _, e := range events {
		repo.events[e.ID] = e
		if e.ID >= repo.nextID {
			repo.nextID = e.ID + 1
		}
	}
	return repo
}

func (m *memEventRepo) Create(req *models.EventCreateRequest) (*models.Event, error) {
	event := &models.Event{
		ID:              m.nextID,
		Title:           req.Title,
		Description:     req.Description,
		ActualPrice:     req.ActualPrice,
		DiscountedPrice: req.DiscountedPrice,
		Trending:        req.Trending,
		CategoryID:      req.CategoryID,
		ImageURL:        req.ImageURL,
	}
	m.nextID++
	m.events[event.ID] = event
	return event, nil
}

func (m *memEventRepo) Update(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	event.Title = req.Title
	event.ActualPrice = req.ActualPrice
	event.DiscountedPrice = req.DiscountedPrice
	event.CategoryID = req.CategoryID
	return event, nil
}

func (m *memEventRepo) GetByID(id int) (*models.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

func (m *memEventRepo) Search(filters repositories.EventSearchFilters) ([]*models.Event, error) {
	var events []*models.Event
	for _, e := range m.events {
		if filters.CategoryID != 0 && e.CategoryID != filters.CategoryID {
			continue
		}
		if filters.Trending && !e.Trending {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (m *memEventRepo) ApplyReviewStats(eventID, stars int) error {
	event, ok := m.events[eventID]
	if !ok {
		return models.ErrEventNotFound
	}
	event.Rating = (event.Rating*float64(event.ReviewsCount) + float64(stars)) / float64(event.ReviewsCount+1)
	event.ReviewsCount++
	return nil
}

type memCategoryRepo struct {
	categories map[int]*models.Category
	nextID     int
}

func newMemCategoryRepo(categories ...*models.Category) *memCategoryRepo {
	repo := &memCategoryRepo{categories: make(map[int]*models.Category), nextID: 1}
	for _, c := range categories {
		repo.categories[c.ID] = c
		if c.ID >= repo.nextID {
			repo.nextID = c.ID + 1
		}
	}
	return repo
}

func (m *memCategoryRepo) Create(req *models.CategoryCreateRequest) (*models.Category, error) {
	for _, c := range m.categories {
		if c.Slug == req.Slug {
			return nil, fmt.Errorf("category slug already in use: %w", models.ErrDuplicateEntry)
		}
	}
	category := &models.Category{ID: m.nextID, Title: req.Title, Slug: req.Slug, Description: req.Description}
	m.nextID++
	m.categories[category.ID] = category
	return category, nil
}

func (m *memCategoryRepo) GetByID(id int) (*models.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, models.ErrCategoryNotFound
	}
	return category, nil
}

func (m *memCategoryRepo) Update(id int, req *models.CategoryUpdateRequest) (*models.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, models.ErrCategoryNotFound
	}
	category.Title = req.Title
	category.Slug = req.Slug
	return category, nil
}

func (m *memCategoryRepo) Delete(id int) error {
	if _, ok := m.categories[id]; !ok {
		return models.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *memCategoryRepo) List() ([]*models.Category, error) {
	var categories []*models.Category
	for _, c := range m.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

type memCartRepo struct {
	carts      map[int]*models.Cart
	nextCartID int
	nextItemID int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[int]*models.Cart), nextCartID: 1, nextItemID: 1}
}

func (m *memCartRepo) GetOrCreate(userID int) (*models.Cart, error) {
	if cart, ok := m.carts[userID]; ok {
		return cart, nil
	}
	cart := &models.Cart{ID: m.nextCartID, UserID: userID}
	m.nextCartID++
	m.carts[userID] = cart
	return cart, nil
}

func (m *memCartRepo) GetByUser(userID int) (*models.Cart, error) {
	return m.GetOrCreate(userID)
}

func (m *memCartRepo) UpsertItem(cartID, eventID, quantity, unitPrice int) (*models.CartItem, error) {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for _, item := range cart.Items {
			if item.EventID == eventID {
				item.Quantity += quantity
				return item, nil
			}
		}
		item := &models.CartItem{ID: m.nextItemID, CartID: cartID, EventID: eventID, Quantity: quantity, UnitPrice: unitPrice}
		m.nextItemID++
		cart.Items = append(cart.Items, item)
		return item, nil
	}
	return nil, models.ErrCartItemNotFound
}

func (m *memCartRepo) UpdateItemQuantity(itemID, cartID, quantity int) (*models.CartItem, error) {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for _, item := range cart.Items {
			if item.ID == itemID {
				item.Quantity = quantity
				return item, nil
			}
		}
	}
	return nil, models.ErrCartItemNotFound
}

func (m *memCartRepo) RemoveItem(itemID, cartID int) error {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for i, item := range cart.Items {
			if item.ID == itemID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return nil
			}
		}
	}
	return models.ErrCartItemNotFound
}

type memOrderRepo struct {
	cartRepo   *memCartRepo
	intentRepo *memIntentRepo
	orders     map[int]*models.Order
	nextID     int
}

func newMemOrderRepo(cartRepo *memCartRepo, intentRepo *memIntentRepo) *memOrderRepo {
	return &memOrderRepo{cartRepo: cartRepo, intentRepo: intentRepo, orders: make(map[int]*models.Order), nextID: 1}
}

func (m *memOrderRepo) CreateVerifiedOrder(userID int, gatewayOrderID, gatewayPaymentID, gatewaySignature string,
	shipping models.ShippingInfo, cart *models.Cart) (*models.Order, error) {

	order := &models.Order{
		ID:               m.nextID,
		UserID:           userID,
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: gatewayPaymentID,
		GatewaySignature: gatewaySignature,
		TotalAmount:      cart.Total(),
		Status:           models.OrderPaid,
		DeliveryStatus:   models.DeliveryReceived,
		ShippingInfo:     shipping,
		CreatedAt:        time.Now(),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, &models.OrderItem{
			OrderID:    order.ID,
			EventID:    item.EventID,
			EventTitle: item.EventTitle,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.Subtotal(),
		})
	}
	m.nextID++
	m.orders[order.ID] = order
	if c, ok := m.cartRepo.carts[userID]; ok {
		c.Items = nil
	}
	delete(m.intentRepo.intents, gatewayOrderID)
	return order, nil
}

func (m *memOrderRepo) GetByID(id int) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}

func (m *memOrderRepo) GetByUser(userID int) ([]*models.Order, error) {
	var orders []*models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *memOrderRepo) List(limit, offset int) ([]*models.Order, error) {
	var orders []*models.Order
	for _, o := range m.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *memOrderRepo) UpdateDeliveryStatus(id int, status models.DeliveryStatus) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	order.DeliveryStatus = status
	return order, nil
}

type memIntentRepo struct {
	intents map[string]*models.CheckoutIntent
}

func newMemIntentRepo() *memIntentRepo {
	return &memIntentRepo{intents: make(map[string]*models.CheckoutIntent)}
}

func (m *memIntentRepo) Create(intent *models.CheckoutIntent) error {
	intent.CreatedAt = time.Now()
	m.intents[intent.GatewayOrderID] = intent
	return nil
}

func (m *memIntentRepo) Get(gatewayOrderID string) (*models.CheckoutIntent, error) {
	intent, ok := m.intents[gatewayOrderID]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return intent, nil
}

func (m *memIntentRepo) DeleteExpired(olderThan time.Duration) (int64, error) {
	return 0, nil
}

type memReviewRepo struct {
	reviews map[string]*models.Review
	nextID  int
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[string]*models.Review), nextID: 1}
}

func (m *memReviewRepo) Create(eventID, userID, stars int, review string) (*models.Review, error) {
	key := fmt.Sprintf("%d:%d", eventID, userID)
	if _, exists := m.reviews[key]; exists {
		return nil, fmt.Errorf("already reviewed: %w", models.ErrDuplicateEntry)
	}
	r := &models.Review{ID: m.nextID, EventID: eventID, UserID: userID, Stars: stars, Review: review, CreatedAt: time.Now()}
	m.nextID++
	m.reviews[key] = r
	return r, nil
}

func (m *memReviewRepo) ListByEvent(eventID int) ([]*models.Review, error) {
	var reviews []*models.Review
	for _, r := range m.reviews {
		if r.EventID == eventID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

type memWishlistRepo struct {
	entries map[string]*models.WishlistEntry
	nextID  int
}

func newMemWishlistRepo() *memWishlistRepo {
	return &memWishlistRepo{entries: make(map[string]*models.WishlistEntry), nextID: 1}
}

func (m *memWishlistRepo) Create(eventID, userID int) (*models.WishlistEntry, error) {
	key := fmt.Sprintf("%d:%d", eventID, userID)
	if _, exists := m.entries[key]; exists {
		return nil, fmt.Errorf("already in wishlist: %w", models.ErrDuplicateEntry)
	}
	entry := &models.WishlistEntry{ID: m.nextID, EventID: eventID, UserID: userID}
	m.nextID++
	m.entries[key] = entry
	return entry, nil
}

func (m *memWishlistRepo) Delete(eventID, userID int) error {
	key := fmt.Sprintf("%d:%d", eventID, userID)
	if _, exists := m.entries[key]; !exists {
		return models.ErrEventNotFound
	}
	delete(m.entries, key)
	return nil
}

func (m *memWishlistRepo) ListByUser(userID int) ([]*models.WishlistEntry, error) {
	var entries []*models.WishlistEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// testEnv wires the full route tree against in-memory storage
type testEnv struct {
	handler  http.Handler
	userRepo *memUserRepo
	cartRepo *memCartRepo
	gateway  *services.MockPaymentGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := newMemUserRepo()
	categoryRepo := newMemCategoryRepo(&models.Category{ID: 1, Title: "Birthdays", Slug: "birthdays"})
	eventRepo := newMemEventRepo(
		&models.Event{ID: 1, Title: "Birthday Deluxe", ActualPrice: 60000, DiscountedPrice: 50000, CategoryID: 1},
		&models.Event{ID: 2, Title: "Wedding Premium", ActualPrice: 150000, DiscountedPrice: 129900, CategoryID: 1},
	)
	cartRepo := newMemCartRepo()
	intentRepo := newMemIntentRepo()
	orderRepo := newMemOrderRepo(cartRepo, intentRepo)
	gateway := services.NewMockPaymentGateway("rzp_test_key", "test_secret")
	email := services.NewMockEmailService()

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(eventRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, eventRepo)
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, intentRepo, gateway, email)
	reviewService := services.NewReviewService(newMemReviewRepo(), eventRepo)
	wishlistService := services.NewWishlistService(newMemWishlistRepo(), eventRepo)
	imageService := services.NewImageService(services.NewFallbackStorageService(t.TempDir(), "http://localhost/uploads"))

	store := sessions.NewCookieStore([]byte("test-secret"))
	authMiddleware := middleware.NewAuthMiddleware(authService, store)

	router := &Router{
		Auth:     NewAuthHandler(authService, store),
		Catalog:  NewCatalogHandler(catalogService, reviewService),
		Cart:     NewCartHandler(cartService),
		Orders:   NewOrderHandler(checkoutService),
		Reviews:  NewReviewHandler(reviewService),
		Wishlist: NewWishlistHandler(wishlistService),
		Contact:  NewContactHandler(email, "support@example.com"),
		Admin:    NewAdminHandler(catalogService, userService, imageService, orderRepo),
	}

	return &testEnv{
		handler:  router.Routes(authMiddleware),
		userRepo: userRepo,
		cartRepo: cartRepo,
		gateway:  gateway,
	}
}

// register creates an account through the API and returns its session cookies
func (e *testEnv) register(t *testing.T, email string) []*http.Cookie {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q,"password":"supersecret","full_name":"Test User"}`, email)
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return rec.Result().Cookies()
}

func (e *testEnv) do(t *testing.T, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}
