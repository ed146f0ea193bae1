package handlers

import (
	"context"

	"packmarket/db"
)

type StorageInterface interface {
	CreateUser(ctx context.Context, u *db.User) error
	GetUser(ctx context.Context, id int) (*db.User, error)
	UpdateUser(ctx context.Context, u *db.User) error

	CreateSupplierProfile(ctx context.Context, p *db.SupplierProfile) error
	GetSupplierProfile(ctx context.Context, id int) (*db.SupplierProfile, error)
	GetSupplierProfileByUserID(ctx context.Context, userID int) (*db.SupplierProfile, error)
	UpdateSupplierProfile(ctx context.Context, p *db.SupplierProfile) error
	SearchSuppliers(ctx context.Context, f db.SupplierSearchFilter) ([]db.SupplierSearchResult, error)

	CreateInquiry(ctx context.Context, inq *db.Inquiry, supplierIDs []int) error
	GetInquiry(ctx context.Context, id int) (*db.Inquiry, error)
	GetInquiriesForBuyer(ctx context.Context, buyerID int) ([]db.Inquiry, error)
	GetInquiriesForSupplier(ctx context.Context, supplierID int) ([]db.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, inq *db.Inquiry, status string) error
	IsSupplierInvited(ctx context.Context, inquiryID, supplierID int) (bool, error)

	CreateQuote(ctx context.Context, q *db.Quote) error
	GetQuotesForInquiry(ctx context.Context, inquiryID int) ([]db.QuoteWithSupplier, error)

	CreateMessage(ctx context.Context, m *db.Message) error
	GetMessage(ctx context.Context, id int) (*db.Message, error)
	GetMessagesForUser(ctx context.Context, userID int) ([]db.Message, error)
	MarkMessageRead(ctx context.Context, id int) (*db.Message, error)

	CreateRating(ctx context.Context, rt *db.Rating) error
	GetRatingsForUser(ctx context.Context, userID int) ([]db.Rating, error)
	HasRatingForInquiry(ctx context.Context, raterID, ratedID, inquiryID int) (bool, error)
	GetRatingStats(ctx context.Context, userID int) (*db.RatingStats, error)

	CreateFileAttachment(ctx context.Context, a *db.FileAttachment) error
}
