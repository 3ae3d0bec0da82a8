package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"accounting/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "icon", "is_default", "created_at", "updated_at", "deleted_at"}).
		AddRow(1, 1, "默认账本", "", true, time.Now(), time.Now(), nil)
}

func categoryRows(id int, name string, categoryType int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "type", "icon", "sort", "is_default", "created_at", "updated_at", "deleted_at"}).
		AddRow(id, name, categoryType, "", 10, true, time.Now(), time.Now(), nil)
}

func TestRecordHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 校验账本归属
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows())

	// 校验类别存在且类型匹配
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(categoryRows(2, "餐饮", models.RecordTypeExpense))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `records`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/records", NewRecordHandler().Create)

	body := `{"amount":35.5,"type":0,"category_id":2,"account_id":1,"date":"2024-06-15","note":"午饭"}`
	req := httptest.NewRequest("POST", "/records", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordHandler_Create_InvalidAmount(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/records", NewRecordHandler().Create)

	body := `{"amount":-5,"type":0,"account_id":1,"date":"2024-06-15"}`
	req := httptest.NewRequest("POST", "/records", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestRecordHandler_Create_CategoryTypeMismatch(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountRows())

	// 收入类别用在支出记录上
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(categoryRows(9, "工资", models.RecordTypeIncome))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/records", NewRecordHandler().Create)

	body := `{"amount":100,"type":0,"category_id":9,"account_id":1,"date":"2024-06-15"}`
	req := httptest.NewRequest("POST", "/records", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "类别与收支类型不匹配", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count.* FROM `records`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery("SELECT .* FROM `records`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "type", "category_id", "account_id", "date", "note", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, 35.5, 0, 2, 1, time.Now(), "午饭", time.Now(), time.Now(), nil).
			AddRow(2, 1, 8000, 1, 9, 1, time.Now(), "工资", time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/records", NewRecordHandler().List)

	req := httptest.NewRequest("GET", "/records?page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	assert.Len(t, data["list"], 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordHandler_Get_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `records`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/records/:id", NewRecordHandler().Get)

	req := httptest.NewRequest("GET", "/records/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `records`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "type", "category_id", "account_id", "date", "note", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, 35.5, 0, 2, 1, time.Now(), "午饭", time.Now(), time.Now(), nil))

	// 软删除走 UPDATE
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `records`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/records/:id", NewRecordHandler().Delete)

	req := httptest.NewRequest("DELETE", "/records/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
