package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"blush/internal/domain/entity"
	"blush/internal/domain/repository"
	"blush/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- In-memory repositories ---
//
// The fakes honor the same sentinel-error contract as the postgres
// implementations, so the services under test cannot tell them apart.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

type fakeOrderRepo struct {
	orders []*entity.Order

	// afterFindByID, when set, runs after a read returns but before the
	// caller acts on it, so tests can slip a competing write in between.
	afterFindByID func()
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	for _, order := range r.orders {
		if order.ID == id {
			copied := *order
			if r.afterFindByID != nil {
				r.afterFindByID()
			}

			return &copied, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var out []*entity.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			copied := *r.orders[i]
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		copied := *r.orders[i]
		out = append(out, &copied)
	}

	return out, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	copied := *order
	r.orders = append(r.orders, &copied)

	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	for _, order := range r.orders {
		if order.ID == id {
			if order.Status != from {
				return repository.ErrOrderStatusStale
			}
			order.Status = to
			order.UpdatedAt = time.Now()

			return nil
		}
	}

	return repository.ErrOrderNotFound
}

// setStatus flips the stored order directly, bypassing the compare-and-swap.
func (r *fakeOrderRepo) setStatus(id uuid.UUID, status entity.OrderStatus) {
	for _, order := range r.orders {
		if order.ID == id {
			order.Status = status
		}
	}
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *product

	return &copied, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		copied := *product
		out = append(out, &copied)
	}

	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	copied := *product
	r.products[product.ID] = &copied

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	copied := *product
	r.products[product.ID] = &copied

	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*entity.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now()
	copied := *token
	r.tokens[token.TokenHash] = &copied

	return nil
}

func (r *fakeRefreshTokenRepo) FindRefreshTokenByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if token.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrRefreshTokenExpired
	}
	copied := *token

	return &copied, nil
}

func (r *fakeRefreshTokenRepo) DeleteRefreshTokenByHash(_ context.Context, tokenHash string) error {
	if _, ok := r.tokens[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.tokens, tokenHash)

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteRefreshTokensByUserID(_ context.Context, userID uuid.UUID) error {
	for hash, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, hash)
		}
	}

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpiredRefreshTokens(_ context.Context) error {
	now := time.Now()
	for hash, token := range r.tokens {
		if token.ExpiresAt.Before(now) {
			delete(r.tokens, hash)
		}
	}

	return nil
}

// --- Transaction plumbing ---

type fakeRepoFactory struct {
	userRepo         *fakeUserRepo
	orderRepo        *fakeOrderRepo
	productRepo      *fakeProductRepo
	refreshTokenRepo *fakeRefreshTokenRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository                 { return f.userRepo }
func (f *fakeRepoFactory) OrderRepo() repository.OrderRepository               { return f.orderRepo }
func (f *fakeRepoFactory) ProductRepo() repository.ProductRepository           { return f.productRepo }
func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository { return f.refreshTokenRepo }

// fakeTxManager runs the callback against the shared fakes without any real
// transaction semantics.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// --- Stub domain services ---

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// stubTokenService issues parseable fake tokens so tests can assert on the
// issued class without real cryptography.
type stubTokenService struct {
	issued int
}

func (s *stubTokenService) IssueAccessToken(userID uuid.UUID) (string, error) {
	s.issued++

	return fmt.Sprintf("access.%s.%d", userID, s.issued), nil
}

func (s *stubTokenService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	s.issued++

	return fmt.Sprintf("refresh.%s.%d", userID, s.issued), nil
}

func (s *stubTokenService) Verify(tokenString string, class service.TokenClass) (*service.Claims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || parts[0] != string(class) {
		return nil, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token")
	}

	return &service.Claims{UserID: userID, Class: class}, nil
}

func (s *stubTokenService) HashToken(tokenString string) string {
	return "hash:" + tokenString
}

func (s *stubTokenService) AccessTokenDuration() time.Duration { return 15 * time.Minute }

func (s *stubTokenService) RefreshTokenDuration() time.Duration { return 7 * 24 * time.Hour }

// --- Fixture ---

type fixture struct {
	userRepo         *fakeUserRepo
	orderRepo        *fakeOrderRepo
	productRepo      *fakeProductRepo
	refreshTokenRepo *fakeRefreshTokenRepo
	txManager        *fakeTxManager
	tokenSvc         *stubTokenService
}

func newFixture() *fixture {
	factory := &fakeRepoFactory{
		userRepo:         newFakeUserRepo(),
		orderRepo:        newFakeOrderRepo(),
		productRepo:      newFakeProductRepo(),
		refreshTokenRepo: newFakeRefreshTokenRepo(),
	}

	return &fixture{
		userRepo:         factory.userRepo,
		orderRepo:        factory.orderRepo,
		productRepo:      factory.productRepo,
		refreshTokenRepo: factory.refreshTokenRepo,
		txManager:        &fakeTxManager{factory: factory},
		tokenSvc:         &stubTokenService{},
	}
}

func (f *fixture) seedUser(name, email string, role entity.Role) *entity.User {
	user := &entity.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "hashed:password",
		Role:         role,
	}
	copied := *user
	f.userRepo.users[user.ID] = &copied

	return user
}

func (f *fixture) seedProduct(name string, price float64) *entity.Product {
	product := &entity.Product{
		ID:    uuid.New(),
		Name:  name,
		Image: "/images/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".jpg",
		Price: price,
		Stock: 25,
	}
	copied := *product
	f.productRepo.products[product.ID] = &copied

	return product
}
