package services

import (
	"testing"

	"github.com/kairyu/kanban-board-api/internal/constants"
	"github.com/kairyu/kanban-board-api/internal/models"
	"github.com/kairyu/kanban-board-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// BoardServiceTestSuite defines the test suite for BoardService
type BoardServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *BoardService
}

// SetupTest runs before each test
func (suite *BoardServiceTestSuite) SetupTest() {
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

	boardRepo := repository.NewBoardRepository(suite.db)
	notifications := NewNotificationService(repository.NewNotificationRepository(suite.db), boardRepo)
	suite.service = NewBoardService(boardRepo, notifications)
}

// TearDownTest runs after each test
func (suite *BoardServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *BoardServiceTestSuite) createTestBoard(name, createdBy string) *models.Board {
	board := &models.Board{
		Name:      name,
		CreatedBy: createdBy,
		Columns:   models.DefaultBoardColumns,
	}
	suite.db.Create(board)
	return board
}

func (suite *BoardServiceTestSuite) adminInbox() []models.Notification {
	var notifications []models.Notification
	suite.db.Where("target_user = ?", constants.BroadcastAdminTarget).Find(&notifications)
	return notifications
}

// TestCreateBoard_DefaultColumns tests the three-column default
func (suite *BoardServiceTestSuite) TestCreateBoard_DefaultColumns() {
	board, err := suite.service.CreateBoard(CreateBoardInput{
		Name: "Sprint",
	}, adminIdentity)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"To Do", "In Progress", "Done"}, board.Columns)
	assert.Equal(suite.T(), "admin1", board.CreatedBy)
}

// TestCreateBoard_CustomColumns tests that provided columns are kept as-is
func (suite *BoardServiceTestSuite) TestCreateBoard_CustomColumns() {
	board, err := suite.service.CreateBoard(CreateBoardInput{
		Name:    "Support",
		Columns: []string{"Inbox", "Done"},
	}, aliceIdentity)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Inbox", "Done"}, board.Columns)
}

// TestCreateBoard_NameRequired tests the blank-name rejection
func (suite *BoardServiceTestSuite) TestCreateBoard_NameRequired() {
	_, err := suite.service.CreateBoard(CreateBoardInput{
		Name: "  ",
	}, adminIdentity)

	assert.ErrorIs(suite.T(), err, ErrBoardNameRequired)
}

// TestCreateBoard_UserActorNotifiesAdmins tests the creation notification split
func (suite *BoardServiceTestSuite) TestCreateBoard_UserActorNotifiesAdmins() {
	_, err := suite.service.CreateBoard(CreateBoardInput{Name: "Sprint"}, aliceIdentity)
	suite.Require().NoError(err)

	notifications := suite.adminInbox()
	suite.Require().Len(notifications, 1)
	assert.Equal(suite.T(), models.NotificationBoardCreated, notifications[0].Type)
}

// TestCreateBoard_AdminActorIsSilent tests that admin board events are silent
func (suite *BoardServiceTestSuite) TestCreateBoard_AdminActorIsSilent() {
	_, err := suite.service.CreateBoard(CreateBoardInput{Name: "Sprint"}, adminIdentity)
	suite.Require().NoError(err)

	assert.Empty(suite.T(), suite.adminInbox())
}

// TestListBoards_AdminSeesAll tests the admin listing
func (suite *BoardServiceTestSuite) TestListBoards_AdminSeesAll() {
	suite.createTestBoard("Sprint", "alice")
	suite.createTestBoard("Backlog", "bob")

	boards, err := suite.service.ListBoards(adminIdentity)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), boards, 2)
}

// TestListBoards_UserSeesOwnOnly tests the ownership-scoped listing
func (suite *BoardServiceTestSuite) TestListBoards_UserSeesOwnOnly() {
	suite.createTestBoard("Sprint", "alice")
	suite.createTestBoard("Backlog", "bob")

	boards, err := suite.service.ListBoards(aliceIdentity)

	assert.NoError(suite.T(), err)
	suite.Require().Len(boards, 1)
	assert.Equal(suite.T(), "Sprint", boards[0].Name)
}

// TestGetBoard_DenialReportedAsNotFound tests that access denial hides
// board existence
func (suite *BoardServiceTestSuite) TestGetBoard_DenialReportedAsNotFound() {
	board := suite.createTestBoard("Sprint", "alice")

	_, err := suite.service.GetBoard(board.ID, bobIdentity)

	assert.ErrorIs(suite.T(), err, ErrBoardNotFound)
}

// TestGetBoard_CreatorCanRead tests creator read access
func (suite *BoardServiceTestSuite) TestGetBoard_CreatorCanRead() {
	board := suite.createTestBoard("Sprint", "alice")

	found, err := suite.service.GetBoard(board.ID, aliceIdentity)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), board.ID, found.ID)
}

// TestUpdateBoard_NilColumnsLeaveStoredValue tests the partial-columns rule
func (suite *BoardServiceTestSuite) TestUpdateBoard_NilColumnsLeaveStoredValue() {
	board := suite.createTestBoard("Sprint", "alice")

	updated, err := suite.service.UpdateBoard(board.ID, UpdateBoardInput{
		Name:        "Sprint 2",
		Description: "Next iteration",
	}, aliceIdentity)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Sprint 2", updated.Name)
	assert.Equal(suite.T(), models.DefaultBoardColumns, updated.Columns)
}

// TestUpdateBoard_NonCreatorForbidden tests the modify gate
func (suite *BoardServiceTestSuite) TestUpdateBoard_NonCreatorForbidden() {
	board := suite.createTestBoard("Sprint", "alice")

	_, err := suite.service.UpdateBoard(board.ID, UpdateBoardInput{
		Name: "Hijacked",
	}, bobIdentity)

	assert.ErrorIs(suite.T(), err, ErrBoardModifyForbidden)
}

// TestDeleteBoard_Success tests deletion by the creator
func (suite *BoardServiceTestSuite) TestDeleteBoard_Success() {
	board := suite.createTestBoard("Sprint", "alice")

	err := suite.service.DeleteBoard(board.ID, aliceIdentity)

	assert.NoError(suite.T(), err)

	var stored models.Board
	err = suite.db.First(&stored, board.ID).Error
	assert.Error(suite.T(), err)
}

// TestDeleteBoard_UserActorNotifiesAdmins tests the deletion notification
// carrying the pre-delete snapshot
func (suite *BoardServiceTestSuite) TestDeleteBoard_UserActorNotifiesAdmins() {
	board := suite.createTestBoard("Sprint", "alice")

	err := suite.service.DeleteBoard(board.ID, aliceIdentity)
	suite.Require().NoError(err)

	notifications := suite.adminInbox()
	suite.Require().Len(notifications, 1)
	assert.Equal(suite.T(), models.NotificationBoardDeleted, notifications[0].Type)
	assert.Equal(suite.T(), "Sprint", notifications[0].BoardName)
}

// TestDeleteBoard_NotFound tests deleting a non-existent board
func (suite *BoardServiceTestSuite) TestDeleteBoard_NotFound() {
	err := suite.service.DeleteBoard(9999, adminIdentity)

	assert.ErrorIs(suite.T(), err, ErrBoardNotFound)
}

// TestSuite runs the test suite
func TestBoardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BoardServiceTestSuite))
}
