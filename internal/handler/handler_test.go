package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/treelife/internal/handler"
	"github.com/mtlprog/treelife/internal/handler/dto"
	"github.com/mtlprog/treelife/internal/middleware"
	"github.com/mtlprog/treelife/internal/testdb"
)

// personsColumns are the columns of the fixture persons table.
var personsColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "ordered_tree",
	"picture_filename", "created_at", "updated_at",
}

type HandlerTestSuite struct {
	suite.Suite
	pool    *pgxpool.Pool
	handler *handler.Handler
	server  http.Handler
}

func (s *HandlerTestSuite) SetupSuite() {
	db, err := testdb.Open(context.Background(), "handler_test")
	if err != nil {
		s.T().Skipf("test database unavailable: %v", err)
	}
	s.pool = db.Pool()

	s.handler = handler.New(s.pool)

	mux := http.NewServeMux()
	s.handler.RegisterRoutes(mux)
	s.server = middleware.Chain(mux)
}

func (s *HandlerTestSuite) SetupTest() {
	s.Require().NoError(testdb.Reset(context.Background(), s.pool))
}

func (s *HandlerTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// Helper to make a request through the full middleware stack
func (s *HandlerTestSuite) makeRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.server.ServeHTTP(w, req)

	return w
}

func (s *HandlerTestSuite) insertPerson(firstName string, email *string, orderedTree *int64) int64 {
	var id int64
	err := s.pool.QueryRow(context.Background(), `
		INSERT INTO persons (first_name, email, ordered_tree)
		VALUES ($1, $2, $3)
		RETURNING id
	`, firstName, email, orderedTree).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *HandlerTestSuite) insertTree(name string, stock, ordered int) int64 {
	var id int64
	err := s.pool.QueryRow(context.Background(), `
		INSERT INTO trees (name, stock_available, persons_ordered)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, stock, ordered).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&errResp))
	return errResp
}

func (s *HandlerTestSuite) TestListUsers_Empty() {
	w := s.makeRequest("GET", "/users", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/json", w.Header().Get("Content-Type"))
	s.JSONEq(`[]`, w.Body.String())
}

func (s *HandlerTestSuite) TestListUsers_Rows() {
	email := "asha@example.com"
	s.insertPerson("Asha", &email, nil)
	s.insertPerson("Ravi", nil, nil)
	s.insertPerson("Meera", nil, nil)

	w := s.makeRequest("GET", "/users", nil)
	s.Equal(http.StatusOK, w.Code)

	var rows []map[string]any
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&rows))
	s.Require().Len(rows, 3)

	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		s.ElementsMatch(personsColumns, keys)
	}

	names := []any{rows[0]["first_name"], rows[1]["first_name"], rows[2]["first_name"]}
	s.ElementsMatch([]any{"Asha", "Ravi", "Meera"}, names)
}

func (s *HandlerTestSuite) TestListUsers_Idempotent() {
	s.insertPerson("Asha", nil, nil)
	s.insertPerson("Ravi", nil, nil)

	first := s.makeRequest("GET", "/users", nil)
	second := s.makeRequest("GET", "/users", nil)

	s.Equal(http.StatusOK, first.Code)
	s.Equal(http.StatusOK, second.Code)
	s.Equal(first.Body.String(), second.Body.String())
}

func (s *HandlerTestSuite) TestListUsers_NotCached() {
	s.insertPerson("Asha", nil, nil)
	before := s.makeRequest("GET", "/users", nil)

	s.insertPerson("Ravi", nil, nil)
	after := s.makeRequest("GET", "/users", nil)

	var rows []map[string]any
	s.Require().NoError(json.NewDecoder(after.Body).Decode(&rows))
	s.Len(rows, 2)
	s.NotEqual(before.Body.String(), after.Body.String())
}

// TestListUsers_QueryFailure checks that a failing query yields a generic 500.
func (s *HandlerTestSuite) TestListUsers_QueryFailure() {
	ctx := context.Background()

	_, err := s.pool.Exec(ctx, "ALTER TABLE persons RENAME TO persons_hidden")
	s.Require().NoError(err)
	defer func() {
		_, err := s.pool.Exec(ctx, "ALTER TABLE persons_hidden RENAME TO persons")
		s.Require().NoError(err)
	}()

	w := s.makeRequest("GET", "/users", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	errResp := s.decodeError(w)
	s.Equal("INTERNAL_ERROR", errResp.Error.Code)
	s.Equal("Internal server error", errResp.Error.Message)
}

func (s *HandlerTestSuite) TestHealthz() {
	w := s.makeRequest("GET", "/healthz", nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestCreatePerson() {
	reqBody := map[string]any{"first_name": "Asha", "email": "asha@example.com"}

	w := s.makeRequest("POST", "/persons", reqBody)
	s.Equal(http.StatusCreated, w.Code)

	var person dto.PersonResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&person))
	s.NotZero(person.ID)
	s.Equal("Asha", person.FirstName)
	s.Nil(person.OrderedTree)

	// Same email again
	w = s.makeRequest("POST", "/persons", reqBody)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("EMAIL_EXISTS", s.decodeError(w).Error.Code)
}

func (s *HandlerTestSuite) TestEmailExists() {
	email := "asha@example.com"
	s.insertPerson("Asha", &email, nil)

	w := s.makeRequest("GET", "/persons/email-exists?email=asha@example.com", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"exists":true}`, w.Body.String())

	w = s.makeRequest("GET", "/persons/email-exists?email=nobody@example.com", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"exists":false}`, w.Body.String())
}

func (s *HandlerTestSuite) TestGetPerson_NotFound() {
	w := s.makeRequest("GET", "/persons/12345", nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("PERSON_NOT_FOUND", s.decodeError(w).Error.Code)
}

func (s *HandlerTestSuite) TestHasOrder() {
	treeID := s.insertTree("Neem", 2, 1)
	ordered := s.insertPerson("Asha", nil, &treeID)
	notOrdered := s.insertPerson("Ravi", nil, nil)

	w := s.makeRequest("GET", "/persons/"+itoa(ordered)+"/has-order", nil)
	s.Equal(http.StatusOK, w.Code)
	var status dto.HasOrderResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&status))
	s.True(status.HasOrdered)
	s.Require().NotNil(status.TreeID)
	s.Equal(treeID, *status.TreeID)

	w = s.makeRequest("GET", "/persons/"+itoa(notOrdered)+"/has-order", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"hasOrdered":false,"treeId":null}`, w.Body.String())
}

func (s *HandlerTestSuite) TestAvailableTrees() {
	s.insertTree("Neem", 2, 0)
	s.insertTree("Peepal", 1, 1)
	s.insertTree("Banyan", 5, 4)

	w := s.makeRequest("GET", "/trees/available", nil)
	s.Equal(http.StatusOK, w.Code)

	var trees []dto.TreeResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&trees))
	s.Require().Len(trees, 2)
	s.Equal("Neem", trees[0].Name)
	s.Equal("Banyan", trees[1].Name)
}

func (s *HandlerTestSuite) TestOrderLifecycle() {
	treeID := s.insertTree("Neem", 1, 0)
	personID := s.insertPerson("Asha", nil, nil)

	w := s.makeRequest("POST", "/orders/tree", dto.OrderTreeRequest{TreeName: "Neem", PersonID: personID})
	s.Equal(http.StatusOK, w.Code)
	var placed dto.OrderResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&placed))
	s.True(placed.Success)
	s.Equal(treeID, placed.TreeID)

	// Stock exhausted now
	other := s.insertPerson("Ravi", nil, nil)
	w = s.makeRequest("POST", "/orders/tree", dto.OrderTreeRequest{TreeName: "Neem", PersonID: other})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("TREE_OUT_OF_STOCK", s.decodeError(w).Error.Code)

	w = s.makeRequest("DELETE", "/orders/cancel/"+itoa(personID), nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"success":true,"tree_id":`+itoa(treeID)+`}`, w.Body.String())

	w = s.makeRequest("DELETE", "/orders/cancel/"+itoa(personID), nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("NO_ORDER", s.decodeError(w).Error.Code)
}

func (s *HandlerTestSuite) TestOrder_UnknownTree() {
	personID := s.insertPerson("Asha", nil, nil)

	w := s.makeRequest("POST", "/orders/tree", dto.OrderTreeRequest{TreeName: "Baobab", PersonID: personID})

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("TREE_NOT_FOUND", s.decodeError(w).Error.Code)
}

func (s *HandlerTestSuite) TestAddresses() {
	s.insertTree("Neem", 1, 0)
	personID := s.insertPerson("Asha", nil, nil)
	path := "/persons/" + itoa(personID) + "/addresses"

	w := s.makeRequest("GET", path, nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())

	w = s.makeRequest("POST", path, map[string]any{"city": "Pune", "pin_code": "411001", "tree_name": "Neem"})
	s.Equal(http.StatusCreated, w.Code)
	var inserted dto.AddressInsertResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&inserted))
	s.NotZero(inserted.AddressID)
	s.True(inserted.TreeOrdered)

	w = s.makeRequest("GET", path, nil)
	s.Equal(http.StatusOK, w.Code)
	var addresses []dto.AddressResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&addresses))
	s.Require().Len(addresses, 1)
	s.Equal("Pune", *addresses[0].City)

	w = s.makeRequest("GET", "/persons/"+itoa(personID)+"/tree", nil)
	s.Equal(http.StatusOK, w.Code)
	var details dto.PersonWithTreeResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&details))
	s.Equal(personID, details.Person.ID)
	s.Require().NotNil(details.Tree)
	s.Equal("Neem", details.Tree.Name)
	s.Len(details.Addresses, 1)
}

func (s *HandlerTestSuite) TestAddAddress_UnknownPerson() {
	w := s.makeRequest("POST", "/persons/999/addresses", map[string]any{"city": "Pune"})

	s.Equal(http.StatusNotFound, w.Code)
}
