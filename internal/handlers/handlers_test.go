package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/naiaprojects/linkwedding/internal/middleware"
	"github.com/naiaprojects/linkwedding/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		body, _ := json.Marshal(models.Credentials{Login: "admin", Password: "rahasia"})
		r := httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		handler.Register(rr, r)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, strings.HasPrefix(rr.Header().Get("Authorization"), "Bearer "))
	})

	t.Run("DuplicateLogin", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_login_key"`))

		body, _ := json.Marshal(models.Credentials{Login: "admin", Password: "rahasia"})
		r := httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		handler.Register(rr, r)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsEmptyCredentials(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()

	// The same chain main wires for register: the credential guard must stop
	// empty logins before anything reaches the database.
	guarded := middleware.Conveyor(
		http.HandlerFunc(handler.Register),
		handler.Logger,
		middleware.ValidateCredentials,
	)

	body, _ := json.Marshal(models.Credentials{Login: "", Password: ""})
	r := httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewBuffer(body))
	r.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	guarded.ServeHTTP(rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin(t *testing.T) {
	handler, mock, closeDB := newTestHandler(t)
	defer closeDB()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT uuid, login, password FROM users`).
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"uuid", "login", "password"}).
				AddRow("user-uuid", "admin", string(hash)))

		body, _ := json.Marshal(models.Credentials{Login: "admin", Password: "rahasia"})
		r := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		handler.Login(rr, r)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, strings.HasPrefix(rr.Header().Get("Authorization"), "Bearer "))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mock.ExpectQuery(`SELECT uuid, login, password FROM users`).
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"uuid", "login", "password"}).
				AddRow("user-uuid", "admin", string(hash)))

		body, _ := json.Marshal(models.Credentials{Login: "admin", Password: "salah"})
		r := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		handler.Login(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("UnknownLogin", func(t *testing.T) {
		mock.ExpectQuery(`SELECT uuid, login, password FROM users`).
			WithArgs("ghost").
			WillReturnError(errors.New("sql: no rows in result set"))

		body, _ := json.Marshal(models.Credentials{Login: "ghost", Password: "rahasia"})
		r := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		handler.Login(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
