package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"packmarket/db"
	"packmarket/internal/handlers"
	"packmarket/internal/handlers/testutils"
)

func marketUsers() map[int]*db.User {
	return map[int]*db.User{
		1: {ID: 1, Role: "buyer", CompanyName: "Fresh Foods GmbH"},
		2: {ID: 2, Role: "supplier", CompanyName: "Acme Packaging"},
		3: {ID: 3, Role: "supplier", CompanyName: "GlassWorks"},
	}
}

func TestCreateInquiryHandlerFanOut(t *testing.T) {
	mockStore := &MockStorage{users: marketUsers()}
	handler := handlers.NewHandler(mockStore)

	reqBody := `{
        "buyerId": 1,
        "supplierIds": [2, 3],
        "packagingType": "bottles",
        "material": "glass",
        "quantity": 10000,
        "description": "Juice bottles, 0.5l"
    }`
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries/new", strings.NewReader(reqBody))
	w := httptest.NewRecorder()

	handler.CreateInquiryHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"status":"pending"`)
	// рассылка: ровно те поставщики, что были перечислены
	require.Equal(t, []int{2, 3}, mockStore.createdWithSupplierIDs)
}

func TestCreateInquiryHandlerEmptySupplierList(t *testing.T) {
	mockStore := &MockStorage{users: marketUsers()}
	handler := handlers.NewHandler(mockStore)

	reqBody := `{
        "buyerId": 1,
        "packagingType": "boxes",
        "material": "cardboard",
        "quantity": 300,
        "description": "Shipping boxes"
    }`
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries/new", strings.NewReader(reqBody))
	w := httptest.NewRecorder()

	handler.CreateInquiryHandler(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Empty(t, mockStore.createdWithSupplierIDs)
}

func TestCreateInquiryHandlerDuplicateSupplierIDs(t *testing.T) {
	mockStore := &MockStorage{users: marketUsers()}
	handler := handlers.NewHandler(mockStore)

	reqBody := `{
        "buyerId": 1,
        "supplierIds": [2, 2, 3],
        "packagingType": "bottles",
        "material": "glass",
        "quantity": 10000,
        "description": "Juice bottles"
    }`
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries/new", strings.NewReader(reqBody))
	w := httptest.NewRecorder()

	handler.CreateInquiryHandler(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	// повтор id не даёт второй строки рассылки
	require.Equal(t, []int{2, 3}, mockStore.createdWithSupplierIDs)
}

func TestCreateInquiryHandlerMissingSupplier(t *testing.T) {
	mockStore := &MockStorage{users: marketUsers()}
	handler := handlers.NewHandler(mockStore)

	reqBody := `{
        "buyerId": 1,
        "supplierIds": [2, 99],
        "packagingType": "bottles",
        "material": "glass",
        "quantity": 10000,
        "description": "Juice bottles"
    }`
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries/new", strings.NewReader(reqBody))
	w := httptest.NewRecorder()

	handler.CreateInquiryHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Contains(t, string(body), "supplier 99 not found")
	// операция отменена целиком, ни одной записи
	require.Nil(t, mockStore.createdWithSupplierIDs)
}

func TestCreateInquiryHandlerWrongRoleSupplier(t *testing.T) {
	users := marketUsers()
	users[4] = &db.User{ID: 4, Role: "buyer", CompanyName: "Another Buyer"}
	mockStore := &MockStorage{users: users}
	handler := handlers.NewHandler(mockStore)

	reqBody := `{
        "buyerId": 1,
        "supplierIds": [4],
        "packagingType": "bottles",
        "material": "glass",
        "quantity": 10000,
        "description": "Juice bottles"
    }`
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries/new", strings.NewReader(reqBody))
	w := httptest.NewRecorder()

	handler.CreateInquiryHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusConflict, res.StatusCode)
	require.Contains(t, string(body), "user 4 is not a supplier")
	require.Nil(t, mockStore.createdWithSupplierIDs)
}

func TestCreateInquiryHandlerSupplierAsBuyer(t *testing.T) {
	mockStore := &MockStorage{users: marketUsers()}
	handler := handlers.NewHandler(mockStore)

	reqBody := `{
        "buyerId": 2,
        "packagingType": "bottles",
        "material": "glass",
        "quantity": 10000,
        "description": "Juice bottles"
    }`
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries/new", strings.NewReader(reqBody))
	w := httptest.NewRecorder()

	handler.CreateInquiryHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusConflict, res.StatusCode)
	require.Contains(t, string(body), "user 2 is not a buyer")
}

func TestGetInquiriesForBuyerHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := handlers.NewHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/inquiries/buyer/1", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"buyerId": "1"})
	w := httptest.NewRecorder()

	handler.GetInquiriesForBuyerHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"buyerId":1`)
}

func TestUpdateInquiryStatusHandlerForward(t *testing.T) {
	mockStore := &MockStorage{
		inquiries: map[int]*db.Inquiry{5: {ID: 5, Status: "pending"}},
	}
	handler := handlers.NewHandler(mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/inquiries/5/status?status=responded", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"inquiryId": "5"})
	w := httptest.NewRecorder()

	handler.UpdateInquiryStatusHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"status":"responded"`)
	require.Equal(t, "responded", mockStore.updatedStatus)
}

func TestUpdateInquiryStatusHandlerBackward(t *testing.T) {
	mockStore := &MockStorage{
		inquiries: map[int]*db.Inquiry{5: {ID: 5, Status: "closed"}},
	}
	handler := handlers.NewHandler(mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/inquiries/5/status?status=pending", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"inquiryId": "5"})
	w := httptest.NewRecorder()

	handler.UpdateInquiryStatusHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusConflict, res.StatusCode)
	// ошибка называет оба статуса
	require.Contains(t, string(body), "closed")
	require.Contains(t, string(body), "pending")
	require.Empty(t, mockStore.updatedStatus)
}

func TestUpdateInquiryStatusHandlerSameStatus(t *testing.T) {
	mockStore := &MockStorage{
		inquiries: map[int]*db.Inquiry{5: {ID: 5, Status: "responded"}},
	}
	handler := handlers.NewHandler(mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/inquiries/5/status?status=responded", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"inquiryId": "5"})
	w := httptest.NewRecorder()

	handler.UpdateInquiryStatusHandler(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	// no-op, но updated_at обновляется записью
	require.Equal(t, "responded", mockStore.updatedStatus)
}

func TestUpdateInquiryStatusHandlerLostRaceBlocksRegression(t *testing.T) {
	// Параллельный запрос успел закрыть запрос между чтением и записью:
	// повторная проверка по свежему статусу не пускает closed -> responded
	mockStore := &MockStorage{
		inquiries:        map[int]*db.Inquiry{5: {ID: 5, Status: "pending"}},
		concurrentStatus: "closed",
	}
	handler := handlers.NewHandler(mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/inquiries/5/status?status=responded", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"inquiryId": "5"})
	w := httptest.NewRecorder()

	handler.UpdateInquiryStatusHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusConflict, res.StatusCode)
	require.Contains(t, string(body), "closed")
	require.Contains(t, string(body), "responded")
	require.Empty(t, mockStore.updatedStatus)
}

func TestUpdateInquiryStatusHandlerLostRaceRetries(t *testing.T) {
	// Гонка в разрешённую сторону: после перечитывания переход
	// responded -> closed всё ещё вперёд и проходит
	mockStore := &MockStorage{
		inquiries:        map[int]*db.Inquiry{5: {ID: 5, Status: "pending"}},
		concurrentStatus: "responded",
	}
	handler := handlers.NewHandler(mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/inquiries/5/status?status=closed", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"inquiryId": "5"})
	w := httptest.NewRecorder()

	handler.UpdateInquiryStatusHandler(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Equal(t, "closed", mockStore.updatedStatus)
}

func TestUpdateInquiryStatusHandlerUnknownInquiry(t *testing.T) {
	mockStore := &MockStorage{}
	handler := handlers.NewHandler(mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/inquiries/99/status?status=closed", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"inquiryId": "99"})
	w := httptest.NewRecorder()

	handler.UpdateInquiryStatusHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Contains(t, string(body), "inquiry not found")
}

func TestUpdateInquiryStatusHandlerInvalidStatus(t *testing.T) {
	mockStore := &MockStorage{
		inquiries: map[int]*db.Inquiry{5: {ID: 5, Status: "pending"}},
	}
	handler := handlers.NewHandler(mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/inquiries/5/status?status=done", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"inquiryId": "5"})
	w := httptest.NewRecorder()

	handler.UpdateInquiryStatusHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}
