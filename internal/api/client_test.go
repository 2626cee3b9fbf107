package api

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/talentforge/workspace/internal/dto"
	apierrors "github.com/talentforge/workspace/internal/errors"
	"github.com/talentforge/workspace/internal/models"
	"github.com/talentforge/workspace/internal/session"
)

// ClientTestSuite runs the REST client against a fake backend implementing
// the consumed endpoints.
type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *Client

	// per-test knobs
	filesStatus int
	lastAuth    string
}

func (suite *ClientTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	suite.filesStatus = http.StatusOK

	r.Use(func(c *gin.Context) {
		suite.lastAuth = c.GetHeader("Authorization")
		c.Next()
	})

	r.GET("/projects/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.ProjectDTO{
			ID: 7, Title: "Marketplace redesign", Status: models.ProjectStatusInProgress,
			ClientUsername: "client1", AssignedTalentUsername: "freelancer1",
		})
	})
	r.GET("/tasks/projects/:projectId", func(c *gin.Context) {
		c.JSON(http.StatusOK, []dto.TaskDTO{
			{ID: 1, Title: "First", Status: models.TaskStatusToDo, Priority: models.TaskPriorityMedium},
			{ID: 2, Title: "Second", Status: models.TaskStatusDone, Priority: models.TaskPriorityHigh},
		})
	})
	r.POST("/tasks/projects/:projectId", func(c *gin.Context) {
		var req dto.CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_INPUT", "message": "invalid request body"})
			return
		}
		c.JSON(http.StatusCreated, dto.TaskDTO{ID: 101, Title: req.Title, Status: models.TaskStatusToDo, Priority: req.Priority})
	})
	r.PATCH("/tasks/:id/status", func(c *gin.Context) {
		var req dto.UpdateTaskStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_INPUT", "message": "invalid status"})
			return
		}
		c.JSON(http.StatusOK, dto.TaskDTO{ID: 1, Title: "First", Status: req.Status})
	})
	r.DELETE("/tasks/:id", func(c *gin.Context) {
		if c.Param("id") == "404" {
			c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "message": "task not found"})
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/tasks/:id/history", func(c *gin.Context) {
		c.JSON(http.StatusOK, []dto.TaskHistoryDTO{
			{ID: 1, TaskID: 1, FieldName: "status", OldValue: "TO_DO", NewValue: "IN_PROGRESS"},
		})
	})
	r.GET("/projects/:id/workspace/files", func(c *gin.Context) {
		if suite.filesStatus != http.StatusOK {
			c.JSON(suite.filesStatus, gin.H{"code": "NOT_FOUND", "message": "no file store"})
			return
		}
		c.JSON(http.StatusOK, []dto.FileAttachmentDTO{
			{ID: 1, FileName: "brief.pdf", FileType: "application/pdf", Size: 2048, UploaderUsername: "client1"},
		})
	})
	r.POST("/projects/:id/workspace/files", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_INPUT", "message": "file required"})
			return
		}
		c.JSON(http.StatusCreated, dto.FileAttachmentDTO{
			ID: 9, FileName: file.Filename, StoredFileName: "stored_" + file.Filename,
			FileType: c.GetHeader("X-File-Type"), Size: file.Size, UploaderUsername: "freelancer1",
		})
	})
	r.GET("/workspace/files/:stored", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/pdf", []byte("pdf-bytes"))
	})
	r.DELETE("/workspace/files/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	suite.server = httptest.NewServer(r)
	sess := session.New("test-token", "freelancer1")
	suite.client = NewClient(suite.server.URL, sess, 5*time.Second, nil)
}

func (suite *ClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *ClientTestSuite) TestBearerTokenSent() {
	_, err := suite.client.GetProject(context.Background(), 7)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Bearer test-token", suite.lastAuth)
}

func (suite *ClientTestSuite) TestMissingTokenFailsWithoutRequest() {
	suite.lastAuth = "unset"
	client := NewClient(suite.server.URL, session.New("", "freelancer1"), 5*time.Second, nil)

	_, err := client.ListTasks(context.Background(), 7)

	var auth *apierrors.AuthError
	suite.True(stderrors.As(err, &auth))
	assert.Equal(suite.T(), "unset", suite.lastAuth, "no request reached the server")
}

func (suite *ClientTestSuite) TestGetProject() {
	project, err := suite.client.GetProject(context.Background(), 7)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Marketplace redesign", project.Title)
	assert.Equal(suite.T(), models.ProjectStatusInProgress, project.Status)
}

func (suite *ClientTestSuite) TestListTasks() {
	tasks, err := suite.client.ListTasks(context.Background(), 7)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 2)
	assert.Equal(suite.T(), "First", tasks[0].Title)
	assert.Equal(suite.T(), models.TaskStatusDone, tasks[1].Status)
}

func (suite *ClientTestSuite) TestCreateTask() {
	task, err := suite.client.CreateTask(context.Background(), 7, dto.CreateTaskRequest{
		Title: "New task", Priority: models.TaskPriorityLow,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(101), task.ID)
	assert.Equal(suite.T(), models.TaskPriorityLow, task.Priority)
}

func (suite *ClientTestSuite) TestUpdateTaskStatus() {
	task, err := suite.client.UpdateTaskStatus(context.Background(), 1, models.TaskStatusInReview)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInReview, task.Status)
}

func (suite *ClientTestSuite) TestDeleteTask_NotFound() {
	err := suite.client.DeleteTask(context.Background(), 404)

	var notFound *apierrors.NotFoundError
	suite.True(stderrors.As(err, &notFound))
	assert.Equal(suite.T(), "task not found", notFound.Message)
}

func (suite *ClientTestSuite) TestTaskHistory() {
	entries, err := suite.client.TaskHistory(context.Background(), 1)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	assert.Equal(suite.T(), "status", entries[0].FieldName)
}

func (suite *ClientTestSuite) TestListFiles() {
	files, err := suite.client.ListFiles(context.Background(), 7)
	suite.Require().NoError(err)
	suite.Require().Len(files, 1)
	assert.Equal(suite.T(), "brief.pdf", files[0].FileName)
}

func (suite *ClientTestSuite) TestListFiles_NotFoundMeansEmpty() {
	// Older projects have no file store; 404 is an empty list, not an error.
	suite.filesStatus = http.StatusNotFound

	files, err := suite.client.ListFiles(context.Background(), 7)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), files)
}

func (suite *ClientTestSuite) TestUploadFile_ProgressAndResult() {
	content := strings.Repeat("a", 4096)
	var percents []int

	attachment, err := suite.client.UploadFile(context.Background(), 7, "design.png", "image/png",
		int64(len(content)), strings.NewReader(content), func(p int) { percents = append(percents, p) })

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "design.png", attachment.FileName)
	assert.Equal(suite.T(), "stored_design.png", attachment.StoredFileName)
	assert.Equal(suite.T(), "image/png", attachment.FileType)

	suite.Require().NotEmpty(percents)
	assert.Equal(suite.T(), 100, percents[len(percents)-1])
	for i := 1; i < len(percents); i++ {
		assert.Greater(suite.T(), percents[i], percents[i-1], "progress only ever increases")
	}
}

func (suite *ClientTestSuite) TestDownloadFile() {
	body, err := suite.client.DownloadFile(context.Background(), "stored_brief.pdf")
	suite.Require().NoError(err)
	defer body.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, body)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "pdf-bytes", buf.String())
}

func (suite *ClientTestSuite) TestDeleteFile() {
	suite.NoError(suite.client.DeleteFile(context.Background(), 1))
}

func (suite *ClientTestSuite) TestNetworkErrorClassified() {
	client := NewClient("http://127.0.0.1:1", session.New("t", "u"), 200*time.Millisecond, nil)

	_, err := client.ListTasks(context.Background(), 7)

	var network *apierrors.NetworkError
	suite.True(stderrors.As(err, &network))
}

func (suite *ClientTestSuite) TestServerErrorMessageSurfaced() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":"OPERATION_FAILED","message":"task service unavailable"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, session.New("t", "u"), 5*time.Second, nil)
	_, err := client.ListTasks(context.Background(), 7)

	var serverErr *apierrors.ServerError
	suite.Require().True(stderrors.As(err, &serverErr))
	assert.Equal(suite.T(), "task service unavailable", serverErr.Message)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
