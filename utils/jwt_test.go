package utils

import (
	"testing"
	"time"

	"hoperise/database"
	"hoperise/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// useTestDB points the package-level DB at an in-memory database with the
// revocation table, so the non-Redis fallback path is the one under test.
func useTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.RevokedToken{}); err != nil {
		t.Fatalf("migrate revoked_tokens: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func TestRevokeJTI_DBFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if RedisClient != nil {
		t.Skip("Redis configured; DB fallback not in play")
	}
	useTestDB(t)

	token, err := GenerateJWT(1, "admin", models.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	_, claims, err := ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("fresh token must validate: %v", err)
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		t.Fatal("token has no jti claim")
	}

	if err := RevokeJTI(jti, time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, _, err := ValidateAccessToken(token); err == nil {
		t.Fatal("revoked token must not validate")
	}

	// Revoking the same jti again is a no-op, not an error.
	if err := RevokeJTI(jti, time.Hour); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
}

func TestRevokeJTI_EmptyJTI(t *testing.T) {
	if err := RevokeJTI("", time.Hour); err == nil {
		t.Fatal("empty jti must be rejected")
	}
}
