package middleware

import (
	"strings"

	"github.com/anotherclass/colortherock/internal/authctx"
	"github.com/anotherclass/colortherock/internal/config"
	"github.com/anotherclass/colortherock/internal/dto"
	"github.com/anotherclass/colortherock/internal/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired lets a request through when any of these hold:
// 1. the X-Admin-Token header matches ADMIN_TOKEN
// 2. the token email is listed in ADMIN_EMAILS
// 3. the member's stored role is admin
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)
	members := repository.New(db).Members

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		memberID, err := authctx.GetMemberID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if containsFold(adminEmails, authctx.GetEmail(c)) {
			return c.Next()
		}

		if member, err := members.FindByID(c.UserContext(), memberID); err == nil && member.IsAdmin() {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func containsFold(list []string, val string) bool {
	if val == "" {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(item, val) {
			return true
		}
	}
	return false
}
