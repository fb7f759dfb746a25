package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kairyu/kanban-board-api/internal/constants"
	"github.com/kairyu/kanban-board-api/internal/database"
	"github.com/kairyu/kanban-board-api/internal/models"
	"github.com/kairyu/kanban-board-api/internal/repository"
	"github.com/kairyu/kanban-board-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// BoardHandlerTestSuite defines the test suite for BoardHandler
type BoardHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *BoardHandler
}

// SetupTest runs before each test
func (suite *BoardHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Task{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	boardRepo := repository.NewBoardRepository(suite.db)
	notifications := services.NewNotificationService(repository.NewNotificationRepository(suite.db), boardRepo)
	boardService := services.NewBoardService(boardRepo, notifications)
	taskService := services.NewTaskService(repository.NewTaskRepository(suite.db), boardRepo, notifications)
	suite.handler = NewBoardHandler(boardService, taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *BoardHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *BoardHandlerTestSuite) createTestBoard(name, createdBy string) *models.Board {
	board := &models.Board{
		Name:      name,
		CreatedBy: createdBy,
		Columns:   models.DefaultBoardColumns,
	}
	suite.db.Create(board)
	return board
}

func (suite *BoardHandlerTestSuite) createTestTask(title, assignedTo string, boardID uint64) *models.Task {
	task := &models.Task{
		Title:      title,
		Status:     constants.DefaultTaskStatus,
		Priority:   constants.DefaultTaskPriority,
		AssignedTo: assignedTo,
		CreatedBy:  "admin1",
		BoardID:    boardID,
	}
	suite.db.Create(task)
	return task
}

// TestListBoards_UserSeesOwnOnly tests the ownership-scoped listing
func (suite *BoardHandlerTestSuite) TestListBoards_UserSeesOwnOnly() {
	suite.createTestBoard("Sprint", "alice")
	suite.createTestBoard("Backlog", "bob")

	c, w := createAuthContext("GET", "/api/boards", nil, aliceIdentity)

	suite.handler.ListBoards(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []models.Board
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response, 1)
	assert.Equal(suite.T(), "Sprint", response[0].Name)
}

// TestListBoards_Unauthorized tests listing without authentication
func (suite *BoardHandlerTestSuite) TestListBoards_Unauthorized() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/boards", nil)

	suite.handler.ListBoards(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestListAccessibleBoards_IncludesAssignmentBoards tests that assignment
// grants a listing entry without granting board reads
func (suite *BoardHandlerTestSuite) TestListAccessibleBoards_IncludesAssignmentBoards() {
	board := suite.createTestBoard("Sprint", "admin1")
	suite.createTestBoard("Backlog", "admin1")
	suite.createTestTask("Fix login", "alice", board.ID)

	c, w := createAuthContext("GET", "/api/boards/accessible", nil, aliceIdentity)

	suite.handler.ListAccessibleBoards(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []models.Board
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response, 1)
	assert.Equal(suite.T(), "Sprint", response[0].Name)
}

// TestGetBoard_Success tests board retrieval by its creator
func (suite *BoardHandlerTestSuite) TestGetBoard_Success() {
	board := suite.createTestBoard("Sprint", "alice")

	c, w := createAuthContext("GET", "/api/boards/1", nil, aliceIdentity)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.GetBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Board
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), board.ID, response.ID)
}

// TestGetBoard_HiddenFromOutsider tests that denial is reported as not-found
func (suite *BoardHandlerTestSuite) TestGetBoard_HiddenFromOutsider() {
	suite.createTestBoard("Sprint", "alice")

	c, w := createAuthContext("GET", "/api/boards/1", nil, bobIdentity)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.GetBoard(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateBoard_Success tests board creation with default columns
func (suite *BoardHandlerTestSuite) TestCreateBoard_Success() {
	body, _ := json.Marshal(map[string]interface{}{
		"name":        "Sprint",
		"description": "Current sprint",
	})

	c, w := createAuthContext("POST", "/api/boards", body, aliceIdentity)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Board
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Sprint", response.Name)
	assert.Equal(suite.T(), "alice", response.CreatedBy)
	assert.Equal(suite.T(), models.DefaultBoardColumns, response.Columns)
}

// TestCreateBoard_MissingName tests the required-name binding
func (suite *BoardHandlerTestSuite) TestCreateBoard_MissingName() {
	body, _ := json.Marshal(map[string]interface{}{
		"description": "No name",
	})

	c, w := createAuthContext("POST", "/api/boards", body, aliceIdentity)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateBoard_Success tests a board update by its creator
func (suite *BoardHandlerTestSuite) TestUpdateBoard_Success() {
	suite.createTestBoard("Sprint", "alice")

	body, _ := json.Marshal(map[string]interface{}{
		"name":    "Sprint 2",
		"columns": []string{"To Do", "Review", "Done"},
	})

	c, w := createAuthContext("PUT", "/api/boards/1", body, aliceIdentity)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Board
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Sprint 2", response.Name)
	assert.Equal(suite.T(), []string{"To Do", "Review", "Done"}, response.Columns)
}

// TestUpdateBoard_NonCreatorForbidden tests the modify gate
func (suite *BoardHandlerTestSuite) TestUpdateBoard_NonCreatorForbidden() {
	suite.createTestBoard("Sprint", "alice")

	body, _ := json.Marshal(map[string]interface{}{"name": "Hijacked"})

	c, w := createAuthContext("PUT", "/api/boards/1", body, bobIdentity)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateBoard(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestDeleteBoard_Success tests board deletion
func (suite *BoardHandlerTestSuite) TestDeleteBoard_Success() {
	board := suite.createTestBoard("Sprint", "alice")

	c, w := createAuthContext("DELETE", "/api/boards/1", nil, aliceIdentity)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Board deleted successfully", response["message"])

	var stored models.Board
	err = suite.db.First(&stored, board.ID).Error
	assert.Error(suite.T(), err)
}

// TestDeleteBoard_NotFound tests deleting a non-existent board
func (suite *BoardHandlerTestSuite) TestDeleteBoard_NotFound() {
	c, w := createAuthContext("DELETE", "/api/boards/9999", nil, adminIdentity)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}

	suite.handler.DeleteBoard(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestBoardHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BoardHandlerTestSuite))
}
