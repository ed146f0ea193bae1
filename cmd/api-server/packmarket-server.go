package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"packmarket/db"
	"packmarket/db/migrations"
	"packmarket/internal/config"
	"packmarket/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	dbConn, err := sqlx.Connect("postgres", cfg.PostgresConn)
	if err != nil {
		log.Fatalf("Cannot connect to DB: %v", err)
	}
	defer dbConn.Close()

	migrations.Run()

	store := db.NewStorage(dbConn)
	h := handlers.NewHandler(store)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)
		// пользователи
		r.Post("/users/new", h.CreateUserHandler)
		r.Get("/users/{userId}/profile", h.GetUserProfileHandler)
		r.Patch("/users/{userId}", h.UpdateUserProfileHandler)
		// профили поставщиков и поиск
		r.Post("/suppliers/profiles/new", h.CreateSupplierProfileHandler)
		r.Patch("/suppliers/profiles/{profileId}", h.UpdateSupplierProfileHandler)
		r.Get("/suppliers/search", h.SearchSuppliersHandler)
		// запросы на упаковку
		r.Post("/inquiries/new", h.CreateInquiryHandler)
		r.Get("/inquiries/buyer/{buyerId}", h.GetInquiriesForBuyerHandler)
		r.Get("/inquiries/supplier/{supplierId}", h.GetInquiriesForSupplierHandler)
		r.Put("/inquiries/{inquiryId}/status", h.UpdateInquiryStatusHandler)
		// предложения
		r.Post("/quotes/new", h.CreateQuoteHandler)
		r.Get("/quotes/inquiry/{inquiryId}", h.GetQuotesForInquiryHandler)
		// сообщения
		r.Post("/messages/new", h.CreateMessageHandler)
		r.Get("/messages/user/{userId}", h.GetMessagesForUserHandler)
		r.Put("/messages/{messageId}/read", h.MarkMessageReadHandler)
		// оценки
		r.Post("/ratings/new", h.CreateRatingHandler)
		r.Get("/ratings/user/{userId}", h.GetRatingsForUserHandler)
		// вложения
		r.Post("/attachments/new", h.UploadFileAttachmentHandler)
	})

	log.Printf("Starting server on %s", cfg.ServerAddress)
	log.Fatal(http.ListenAndServe(cfg.ServerAddress, r))
}
