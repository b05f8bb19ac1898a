package services

import (
	"bytes"
	"context"
	"io"

	"shop-service/models"
	"shop-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- mock product repository ----

type mockProductRepo struct {
	products map[primitive.ObjectID]models.Product
	findErr  error
}

func newMockProductRepo(products ...models.Product) *mockProductRepo {
	m := &mockProductRepo{products: map[primitive.ObjectID]models.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copy := p
	return &copy, nil
}

func (m *mockProductRepo) Find(_ context.Context, page, limit int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

// ---- mock user repository ----

type mockUserRepo struct {
	user       *models.User
	savedCarts []models.Cart
	saveErr    error
	clearErr   error
	clearCalls int
}

func (m *mockUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, repository.ErrUserNotFound
	}
	copy := *m.user
	return &copy, nil
}

func (m *mockUserRepo) SaveCart(_ context.Context, userID primitive.ObjectID, cart models.Cart) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedCarts = append(m.savedCarts, cart)
	m.user.Cart = cart
	return nil
}

func (m *mockUserRepo) ClearCart(_ context.Context, userID primitive.ObjectID) error {
	m.clearCalls++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.user.Cart = models.Cart{Items: []models.CartItem{}}
	return nil
}

// ---- mock cart cache ----

type mockCartCache struct {
	cached      *models.Cart
	sets        []models.Cart
	deleteCalls int
	setErr      error
}

func (m *mockCartCache) Get(_ context.Context, userID string) (*models.Cart, error) {
	if m.cached == nil {
		return nil, repository.ErrCacheMiss
	}
	copy := *m.cached
	return &copy, nil
}

func (m *mockCartCache) Set(_ context.Context, userID string, cart models.Cart) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets = append(m.sets, cart)
	m.cached = &cart
	return nil
}

func (m *mockCartCache) Delete(_ context.Context, userID string) error {
	m.deleteCalls++
	m.cached = nil
	return nil
}

// ---- mock order repository ----

type mockOrderRepo struct {
	created []*models.Order
	order   *models.Order
	findErr error
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.order == nil || m.order.ID != id {
		return nil, repository.ErrOrderNotFound
	}
	copy := *m.order
	return &copy, nil
}

func (m *mockOrderRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range m.created {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

// ---- mock session creator ----

type mockSessionCreator struct {
	sessionID string
	err       error
	calls     int
	lineItems []SessionLineItem
}

func (m *mockSessionCreator) CreateSession(_ context.Context, lineItems []SessionLineItem, successURL, cancelURL string) (string, error) {
	m.calls++
	m.lineItems = lineItems
	if m.err != nil {
		return "", m.err
	}
	return m.sessionID, nil
}

// ---- fake blob store ----

type fakeBlobStore struct {
	objects map[string][]byte
	puts    []string
	gets    []string
	putErr  error
	getErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Put(_ context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if f.putErr != nil {
		return f.putErr
	}
	f.puts = append(f.puts, key)
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.gets = append(f.gets, key)
	return io.NopCloser(bytes.NewReader(f.objects[key])), nil
}
