package handler

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"docregistry/internal/http/middleware"
	"docregistry/internal/model"
	"docregistry/internal/service"
)

// registerUserBody is the JSON request body for POST /users.
type registerUserBody struct {
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// assignRoleBody is the JSON request body for PUT /users/:identity/role.
type assignRoleBody struct {
	Role string `json:"role"`
}

// HealthCheck reports DB connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterUser creates a profile for the caller identity.
func RegisterUser(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body registerUserBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
		role, err := model.ParseRole(body.Role)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}

		profile, err := svc.RegisterUser(c.UserContext(), middleware.CallerIdentity(c), service.RegisterUserRequest{
			Role:        role,
			DisplayName: body.DisplayName,
			Email:       body.Email,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusCreated, profile)
	}
}

// AssignRole sets the target identity's role. Admin only (enforced by the service).
func AssignRole(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := c.Params("identity")
		var body assignRoleBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "malformed request body")
		}
		role, err := model.ParseRole(body.Role)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}

		profile, err := svc.AssignRole(c.UserContext(), middleware.CallerIdentity(c), target, role)
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, profile)
	}
}

// GetMyProfile returns the caller's own profile.
func GetMyProfile(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := svc.GetUserProfile(c.UserContext(), middleware.CallerIdentity(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, profile)
	}
}

// ListUsers returns all profiles in registration order. Admin only.
func ListUsers(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.ListUsers(c.UserContext(), middleware.CallerIdentity(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, users)
	}
}

// UploadDocument creates a document from a multipart form.
// Fields: file (required), name (defaults to the uploaded filename),
// description, file_type (defaults to the part's content type),
// access_level (required), tags (comma-separated).
func UploadDocument(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "file is required")
		}

		level, err := model.ParseAccessLevel(c.FormValue("access_level"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}

		name := c.FormValue("name")
		if name == "" {
			name = fh.Filename
		}
		fileType := c.FormValue("file_type")
		if fileType == "" {
			fileType = fh.Header.Get("Content-Type")
		}
		if fileType == "" {
			fileType = "application/octet-stream"
		}

		var tags []string
		if raw := c.FormValue("tags"); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				tags = append(tags, strings.TrimSpace(t))
			}
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "cannot open uploaded file")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "cannot read uploaded file")
		}

		doc, err := svc.UploadDocument(c.UserContext(), middleware.CallerIdentity(c), service.UploadDocumentRequest{
			Name:        name,
			Description: c.FormValue("description"),
			FileType:    fileType,
			AccessLevel: level,
			Data:        data,
			Tags:        tags,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusCreated, doc)
	}
}

// GetDocument returns document metadata, gated by the caller's visibility.
func GetDocument(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.GetDocument(c.UserContext(), middleware.CallerIdentity(c), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, doc)
	}
}

// DownloadDocument streams the payload bytes. Success responses are the
// raw payload rather than the JSON envelope; failures stay enveloped.
func DownloadDocument(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, doc, err := svc.DownloadDocument(c.UserContext(), middleware.CallerIdentity(c), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, doc.FileType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Name))
		return c.Status(fiber.StatusOK).Send(data)
	}
}

// ListDocuments returns the documents visible to the caller.
func ListDocuments(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.ListDocuments(c.UserContext(), middleware.CallerIdentity(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, docs)
	}
}
