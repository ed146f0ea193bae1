package handlers_test

import (
	"context"
	"database/sql"
	"time"

	"packmarket/db"
)

// MockStorage реализует StorageInterface. Пользователи и запросы задаются
// картами, поведение отдельных методов переопределяется func-полями.
type MockStorage struct {
	users     map[int]*db.User
	inquiries map[int]*db.Inquiry
	profile   *db.SupplierProfile
	message   *db.Message
	stats     *db.RatingStats

	invited   bool
	hasRating bool

	createUserErr    error
	createProfileErr error
	createRatingErr  error

	createdWithSupplierIDs []int
	updatedStatus          string
	markReadCalled         bool
	hasRatingChecked       bool

	// Имитация гонки: первый вызов UpdateInquiryStatus проигрывает —
	// статус в карте меняется на concurrentStatus, возвращается sql.ErrNoRows
	concurrentStatus string

	SearchSuppliersFunc func(ctx context.Context, f db.SupplierSearchFilter) ([]db.SupplierSearchResult, error)
	CreateInquiryFunc   func(ctx context.Context, inq *db.Inquiry, supplierIDs []int) error
}

func (m *MockStorage) CreateUser(ctx context.Context, u *db.User) error {
	if m.createUserErr != nil {
		return m.createUserErr
	}
	u.ID = 1
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	return nil
}

func (m *MockStorage) GetUser(ctx context.Context, id int) (*db.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *MockStorage) UpdateUser(ctx context.Context, u *db.User) error {
	u.UpdatedAt = time.Now()
	return nil
}

func (m *MockStorage) CreateSupplierProfile(ctx context.Context, p *db.SupplierProfile) error {
	if m.createProfileErr != nil {
		return m.createProfileErr
	}
	p.ID = 1
	p.CreatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetSupplierProfile(ctx context.Context, id int) (*db.SupplierProfile, error) {
	if m.profile == nil {
		return nil, sql.ErrNoRows
	}
	return m.profile, nil
}

func (m *MockStorage) GetSupplierProfileByUserID(ctx context.Context, userID int) (*db.SupplierProfile, error) {
	if m.profile == nil {
		return nil, sql.ErrNoRows
	}
	return m.profile, nil
}

func (m *MockStorage) UpdateSupplierProfile(ctx context.Context, p *db.SupplierProfile) error {
	p.UpdatedAt = time.Now()
	return nil
}

func (m *MockStorage) SearchSuppliers(ctx context.Context, f db.SupplierSearchFilter) ([]db.SupplierSearchResult, error) {
	if m.SearchSuppliersFunc != nil {
		return m.SearchSuppliersFunc(ctx, f)
	}
	return []db.SupplierSearchResult{}, nil
}

func (m *MockStorage) CreateInquiry(ctx context.Context, inq *db.Inquiry, supplierIDs []int) error {
	if m.CreateInquiryFunc != nil {
		return m.CreateInquiryFunc(ctx, inq, supplierIDs)
	}
	m.createdWithSupplierIDs = supplierIDs
	inq.ID = 1
	inq.Status = "pending"
	inq.CreatedAt = time.Now()
	inq.UpdatedAt = inq.CreatedAt
	return nil
}

func (m *MockStorage) GetInquiry(ctx context.Context, id int) (*db.Inquiry, error) {
	if inq, ok := m.inquiries[id]; ok {
		return inq, nil
	}
	return nil, sql.ErrNoRows
}

func (m *MockStorage) GetInquiriesForBuyer(ctx context.Context, buyerID int) ([]db.Inquiry, error) {
	return []db.Inquiry{{ID: 1, BuyerID: buyerID, Status: "pending"}}, nil
}

func (m *MockStorage) GetInquiriesForSupplier(ctx context.Context, supplierID int) ([]db.Inquiry, error) {
	return []db.Inquiry{{ID: 2, Status: "pending"}}, nil
}

func (m *MockStorage) UpdateInquiryStatus(ctx context.Context, inq *db.Inquiry, status string) error {
	if m.concurrentStatus != "" {
		if stored, ok := m.inquiries[inq.ID]; ok {
			stored.Status = m.concurrentStatus
		}
		m.concurrentStatus = ""
		return sql.ErrNoRows
	}
	m.updatedStatus = status
	inq.Status = status
	inq.UpdatedAt = time.Now()
	return nil
}

func (m *MockStorage) IsSupplierInvited(ctx context.Context, inquiryID, supplierID int) (bool, error) {
	return m.invited, nil
}

func (m *MockStorage) CreateQuote(ctx context.Context, q *db.Quote) error {
	q.ID = 1
	q.CreatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetQuotesForInquiry(ctx context.Context, inquiryID int) ([]db.QuoteWithSupplier, error) {
	return []db.QuoteWithSupplier{
		{
			Quote:               db.Quote{ID: 1, InquiryID: inquiryID, SupplierID: 2},
			SupplierCompanyName: "Acme Packaging",
			SupplierLocation:    "Berlin",
		},
	}, nil
}

func (m *MockStorage) CreateMessage(ctx context.Context, msg *db.Message) error {
	msg.ID = 1
	msg.SentAt = time.Now()
	return nil
}

func (m *MockStorage) GetMessage(ctx context.Context, id int) (*db.Message, error) {
	if m.message == nil {
		return nil, sql.ErrNoRows
	}
	return m.message, nil
}

func (m *MockStorage) GetMessagesForUser(ctx context.Context, userID int) ([]db.Message, error) {
	return []db.Message{{ID: 1, SenderID: userID, RecipientID: 2, Subject: "Re: inquiry"}}, nil
}

func (m *MockStorage) MarkMessageRead(ctx context.Context, id int) (*db.Message, error) {
	m.markReadCalled = true
	now := time.Now()
	m.message.ReadAt = &now
	return m.message, nil
}

func (m *MockStorage) CreateRating(ctx context.Context, rt *db.Rating) error {
	if m.createRatingErr != nil {
		return m.createRatingErr
	}
	rt.ID = 1
	rt.CreatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetRatingsForUser(ctx context.Context, userID int) ([]db.Rating, error) {
	return []db.Rating{{ID: 1, RatedID: userID, Score: 5}}, nil
}

func (m *MockStorage) HasRatingForInquiry(ctx context.Context, raterID, ratedID, inquiryID int) (bool, error) {
	m.hasRatingChecked = true
	return m.hasRating, nil
}

func (m *MockStorage) GetRatingStats(ctx context.Context, userID int) (*db.RatingStats, error) {
	if m.stats == nil {
		return &db.RatingStats{}, nil
	}
	return m.stats, nil
}

func (m *MockStorage) CreateFileAttachment(ctx context.Context, a *db.FileAttachment) error {
	a.ID = 1
	a.UploadedAt = time.Now()
	return nil
}
