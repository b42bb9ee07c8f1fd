package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/pixelvault/gamestore-api/internal/auth"
	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/payment"
	"github.com/pixelvault/gamestore-api/pkg/database"
)

// mockUserRepo is a mock implementation of UserRepositoryInterface.
type mockUserRepo struct {
	insertFn     func(ctx context.Context, user *model.User) error
	getByEmailFn func(ctx context.Context, email string) (*model.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*model.User, error)
}

func (m *mockUserRepo) Insert(ctx context.Context, user *model.User) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

// mockTokenIssuer is a mock implementation of TokenIssuer.
type mockTokenIssuer struct {
	issueFn func(userID uuid.UUID, role auth.Role) (string, error)
}

func (m *mockTokenIssuer) Issue(userID uuid.UUID, role auth.Role) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(userID, role)
	}
	return "test-token", nil
}

// mockCouponRepo is a mock implementation of CouponRepositoryInterface.
type mockCouponRepo struct {
	insertFn         func(ctx context.Context, c *model.Coupon) error
	updateFn         func(ctx context.Context, c *model.Coupon) error
	deleteFn         func(ctx context.Context, id uuid.UUID) error
	listFn           func(ctx context.Context) ([]model.Coupon, error)
	getByCodeFn      func(ctx context.Context, code string) (*model.Coupon, error)
	incrementUsageFn func(ctx context.Context, q database.TxQuerier, id uuid.UUID) (bool, error)
}

func (m *mockCouponRepo) Insert(ctx context.Context, c *model.Coupon) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, c)
	}
	return nil
}

func (m *mockCouponRepo) Update(ctx context.Context, c *model.Coupon) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, c)
	}
	return nil
}

func (m *mockCouponRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCouponRepo) List(ctx context.Context) ([]model.Coupon, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCouponRepo) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockCouponRepo) IncrementUsage(ctx context.Context, q database.TxQuerier, id uuid.UUID) (bool, error) {
	if m.incrementUsageFn != nil {
		return m.incrementUsageFn(ctx, q, id)
	}
	return true, nil
}

// mockCategoryRepo is a mock implementation of CategoryRepositoryInterface.
type mockCategoryRepo struct {
	insertFn  func(ctx context.Context, c *model.Category) error
	updateFn  func(ctx context.Context, c *model.Category) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	listFn    func(ctx context.Context) ([]model.Category, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

func (m *mockCategoryRepo) Insert(ctx context.Context, c *model.Category) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, c)
	}
	return nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *model.Category) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, c)
	}
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

// mockGameRepo is a mock implementation of GameRepositoryInterface.
type mockGameRepo struct {
	insertFn  func(ctx context.Context, g *model.Game) error
	updateFn  func(ctx context.Context, g *model.Game) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	listFn    func(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]model.Game, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (*model.Game, error)
}

func (m *mockGameRepo) Insert(ctx context.Context, g *model.Game) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, g)
	}
	return nil
}

func (m *mockGameRepo) Update(ctx context.Context, g *model.Game) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, g)
	}
	return nil
}

func (m *mockGameRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockGameRepo) List(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]model.Game, error) {
	if m.listFn != nil {
		return m.listFn(ctx, categoryID, activeOnly)
	}
	return nil, nil
}

func (m *mockGameRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

// mockPackageRepo is a mock implementation of PackageRepositoryInterface.
type mockPackageRepo struct {
	insertFn     func(ctx context.Context, p *model.Package) error
	updateFn     func(ctx context.Context, p *model.Package) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	listByGameFn func(ctx context.Context, gameID uuid.UUID, activeOnly bool) ([]model.Package, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*model.Package, error)
}

func (m *mockPackageRepo) Insert(ctx context.Context, p *model.Package) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, p)
	}
	return nil
}

func (m *mockPackageRepo) Update(ctx context.Context, p *model.Package) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockPackageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPackageRepo) ListByGame(ctx context.Context, gameID uuid.UUID, activeOnly bool) ([]model.Package, error) {
	if m.listByGameFn != nil {
		return m.listByGameFn(ctx, gameID, activeOnly)
	}
	return nil, nil
}

func (m *mockPackageRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

// mockOrderRepo is a mock implementation of OrderRepositoryInterface.
type mockOrderRepo struct {
	insertFn     func(ctx context.Context, q database.TxQuerier, o *model.Order) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*model.Order, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	updateFn     func(ctx context.Context, o *model.Order) error
}

func (m *mockOrderRepo) Insert(ctx context.Context, q database.TxQuerier, o *model.Order) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, q, o)
	}
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockOrderRepo) Update(ctx context.Context, o *model.Order) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, o)
	}
	return nil
}

// mockGateway is a mock implementation of payment.Gateway.
type mockGateway struct {
	createIntentFn func(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*payment.Intent, error)
}

func (m *mockGateway) CreateIntent(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*payment.Intent, error) {
	if m.createIntentFn != nil {
		return m.createIntentFn(ctx, orderID, amount)
	}
	return &payment.Intent{ID: "pi_test", ClientSecret: "cs_test"}, nil
}

// mockTx is a minimal pgx.Tx recording commit/rollback calls. The order
// placement path only passes it through to mocked repositories.
type mockTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *mockTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *mockTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *mockTx) Conn() *pgx.Conn { return nil }

// mockTxBeginner is a mock implementation of TxBeginner.
type mockTxBeginner struct {
	tx       *mockTx
	beginErr error
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	if m.tx == nil {
		m.tx = &mockTx{}
	}
	return m.tx, nil
}
