package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/connexa/connexa/pkg/connexa/auth"
	"github.com/connexa/connexa/pkg/connexa/courses"
	"github.com/connexa/connexa/pkg/connexa/groups"
	"github.com/connexa/connexa/pkg/connexa/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if err := courses.Seed(db); err != nil {
		t.Fatalf("Failed to seed courses: %v", err)
	}
	return db
}

// setupFullServer creates a Gin engine with all routes registered
// This mirrors the setup in cmd/connexa-server/main.go
func setupFullServer(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api.Group("/auth"))

		coursesHandler := courses.NewHandler(db)
		coursesHandler.RegisterRoutes(api.Group("/courses"))

		groupsHandler := groups.NewHandler(db)
		groupsHandler.RegisterRoutes(api.Group("/groups"))
	}

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonBody)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func registerUser(t *testing.T, r *gin.Engine, name, email string) (auth.UserResponse, string) {
	resp := doJSON(t, r, "POST", "/api/auth/register", "", auth.RegisterRequest{
		FullName:           name,
		InstitutionalEmail: email,
		Password:           "Password1!",
		CourseID:           1,
		CurrentSemester:    3,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Registration failed with %d: %s", resp.Code, resp.Body.String())
	}

	var authResp auth.AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &authResp)
	return authResp.User, authResp.Token
}

func TestHealthCheck(t *testing.T) {
	db := setupTestDB(t)
	r := setupFullServer(db)

	resp := doJSON(t, r, "GET", "/health", "", nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupFullServer(db)

	registerUser(t, r, "Alice Santos", "alice@campus.edu.br")

	resp := doJSON(t, r, "POST", "/api/auth/login", "", auth.LoginRequest{
		InstitutionalEmail: "alice@campus.edu.br",
		Password:           "Password1!",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Login failed with %d: %s", resp.Code, resp.Body.String())
	}

	var authResp auth.AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &authResp)

	resp = doJSON(t, r, "GET", "/api/auth/me", authResp.Token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Profile fetch failed with %d: %s", resp.Code, resp.Body.String())
	}
}

// TestGroupLifecycleFlow walks the whole membership story: create a group,
// have a second user join it, observe the listing annotations, leave, and
// observe them again.
func TestGroupLifecycleFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupFullServer(db)

	_, creatorToken := registerUser(t, r, "Alice Santos", "alice@campus.edu.br")
	_, memberToken := registerUser(t, r, "Bob Lima", "bob@campus.edu.br")

	// Create
	resp := doJSON(t, r, "POST", "/api/groups", creatorToken, groups.CreateGroupRequest{
		Name:    "Calc I",
		Subject: "Calculus",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Create group failed with %d: %s", resp.Code, resp.Body.String())
	}
	var group models.StudyGroup
	json.Unmarshal(resp.Body.Bytes(), &group)

	// Join as the second user
	resp = doJSON(t, r, "POST", fmt.Sprintf("/api/groups/%d/join", group.ID), memberToken, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Join failed with %d: %s", resp.Code, resp.Body.String())
	}

	// Listing with member_of includes the group, annotated
	resp = doJSON(t, r, "GET", "/api/groups?member_of=true", memberToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("List failed with %d: %s", resp.Code, resp.Body.String())
	}
	var listed []groups.GroupSummary
	json.Unmarshal(resp.Body.Bytes(), &listed)
	if len(listed) != 1 {
		t.Fatalf("Expected 1 group in member_of listing, got %d", len(listed))
	}
	if listed[0].IsMember == nil || !*listed[0].IsMember {
		t.Error("Expected is_member true after join")
	}
	if listed[0].MemberCount != 1 {
		t.Errorf("Expected member_count 1, got %d", listed[0].MemberCount)
	}

	// Leave
	resp = doJSON(t, r, "POST", fmt.Sprintf("/api/groups/%d/leave", group.ID), memberToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Leave failed with %d: %s", resp.Code, resp.Body.String())
	}

	// member_of listing no longer includes it
	resp = doJSON(t, r, "GET", "/api/groups?member_of=true", memberToken, nil)
	json.Unmarshal(resp.Body.Bytes(), &listed)
	if len(listed) != 0 {
		t.Fatalf("Expected empty member_of listing after leave, got %d", len(listed))
	}

	// Plain listing still shows the group with member_count back to 0
	resp = doJSON(t, r, "GET", "/api/groups", memberToken, nil)
	json.Unmarshal(resp.Body.Bytes(), &listed)
	if len(listed) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(listed))
	}
	if listed[0].MemberCount != 0 {
		t.Errorf("Expected member_count 0 after leave, got %d", listed[0].MemberCount)
	}
	if listed[0].IsMember == nil || *listed[0].IsMember {
		t.Error("Expected is_member false after leave")
	}

	// Creator deletes the group; it disappears from listings
	resp = doJSON(t, r, "DELETE", fmt.Sprintf("/api/groups/%d", group.ID), creatorToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Delete failed with %d: %s", resp.Code, resp.Body.String())
	}
	resp = doJSON(t, r, "GET", "/api/groups", "", nil)
	json.Unmarshal(resp.Body.Bytes(), &listed)
	if len(listed) != 0 {
		t.Fatalf("Expected no groups after delete, got %d", len(listed))
	}
}

func TestCoursesEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupFullServer(db)

	resp := doJSON(t, r, "GET", "/api/courses", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Courses fetch failed with %d", resp.Code)
	}

	var list []models.Course
	json.Unmarshal(resp.Body.Bytes(), &list)
	if len(list) == 0 {
		t.Error("Expected seeded courses")
	}
}
