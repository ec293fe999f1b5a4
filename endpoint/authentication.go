package endpoint

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/middleware"
	"github.com/pijatjogja/pijatjogja-api/model"
	"github.com/pijatjogja/pijatjogja-api/util"
)

const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
	sessionLifetime   = time.Hour
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@pijatjogja.id"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginResponse struct {
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	AdminID uint   `json:"admin_id" example:"1"`
	Name    string `json:"name" example:"Admin PijatJogja"`
}

// helper types to simplify the login flow
type clientInfo struct {
	IP    string
	Agent string
}

type loginContext struct {
	C     *gin.Context
	DB    *gorm.DB
	Email string
	CI    clientInfo
}

// Login godoc
// @Summary      Admin login
// @Description  Authenticate an admin with email and password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload or credentials"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest

	if !bindJSONOrRespond(c, &req, "Email dan password harus diisi") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ci := clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}
	ctx := loginContext{C: c, DB: db, Email: req.Email, CI: ci}

	admin, ok := loadAdminForLogin(ctx)
	if !ok {
		return
	}

	if !ensureAccountNotLocked(ctx, &admin) {
		return
	}

	if !verifyPasswordOrRespond(ctx, &admin, req.Password) {
		return
	}

	finalizeLogin(ctx, &admin, req.Password)
}

func loadAdminForLogin(ctx loginContext) (model.Admin, bool) {
	var admin model.Admin
	err := ctx.DB.Where("email = ?", ctx.Email).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "admin not found")
		util.CallUserError(ctx.C, util.APIErrorParams{Msg: "Email atau password salah", Err: fmt.Errorf("admin not found")})
		return model.Admin{}, false
	}
	if err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "database error")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Database error", Err: err})
		return model.Admin{}, false
	}
	if !admin.IsActive {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "admin inactive")
		util.CallUserError(ctx.C, util.APIErrorParams{Msg: "Akun tidak aktif", Err: fmt.Errorf("admin account is inactive")})
		return model.Admin{}, false
	}
	return admin, true
}

func ensureAccountNotLocked(ctx loginContext, admin *model.Admin) bool {
	if admin.LockedUntil != nil && *admin.LockedUntil > time.Now().Unix() {
		expiry := time.Unix(*admin.LockedUntil, 0)
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "account locked")
		util.CallUserError(ctx.C, util.APIErrorParams{
			Msg: fmt.Sprintf("Account is locked until %s due to multiple failed login attempts", expiry.Format(time.RFC3339)),
			Err: fmt.Errorf("account locked"),
		})
		return false
	}
	return true
}

func verifyPasswordOrRespond(ctx loginContext, admin *model.Admin, plain string) bool {
	match, err := util.VerifyPassword(plain, admin.Password, admin.PasswordSalt)
	if err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "password verification error")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return false
	}
	if !match {
		incrementFailedAttempts(ctx.DB, admin, ctx.CI)
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "invalid password")
		util.CallUserError(ctx.C, util.APIErrorParams{Msg: "Email atau password salah", Err: fmt.Errorf("invalid password")})
		return false
	}
	return true
}

func incrementFailedAttempts(db *gorm.DB, admin *model.Admin, ci clientInfo) {
	admin.FailedAttempts++
	if admin.FailedAttempts >= maxFailedAttempts {
		lockUntil := time.Now().Add(lockoutDuration).Unix()
		admin.LockedUntil = &lockUntil
		util.LogAccountLocked(admin.ID, admin.Email, ci.IP, "too many failed login attempts")
	}
	if err := db.Save(admin).Error; err != nil {
		util.LogLoginFailure(admin.Email, ci.IP, ci.Agent, "failed to update failed attempts")
	}
}

func resetFailedAttempts(db *gorm.DB, admin *model.Admin) error {
	if admin.FailedAttempts > 0 || admin.LockedUntil != nil {
		admin.FailedAttempts = 0
		admin.LockedUntil = nil
		return db.Save(admin).Error
	}
	return nil
}

// upgradeLegacyPasswordIfNeeded rehashes HMAC-era passwords with Argon2 on a
// successful login. Best-effort; login proceeds either way.
func upgradeLegacyPasswordIfNeeded(db *gorm.DB, admin *model.Admin, plain string, ci clientInfo) error {
	if strings.HasPrefix(admin.Password, "argon2id$") {
		return nil
	}
	salt, err := util.GenerateSalt()
	if err != nil {
		return err
	}
	hashed, err := util.HashPasswordArgon2(plain, salt)
	if err != nil {
		return err
	}
	admin.Password = hashed
	admin.PasswordSalt = salt
	if err := db.Save(admin).Error; err != nil {
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventSuspiciousActivity,
			AdminID:   fmt.Sprintf("%d", admin.ID),
			Email:     admin.Email,
			IP:        ci.IP,
			Message:   fmt.Sprintf("Failed to upgrade password hash: %v", err),
		})
		return err
	}
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventPasswordChanged,
		AdminID:   fmt.Sprintf("%d", admin.ID),
		Email:     admin.Email,
		IP:        ci.IP,
		Message:   "Upgraded password hash to Argon2",
	})
	return nil
}

func createJWTToken(admin model.Admin) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": admin.Email,
		"exp":   time.Now().Add(sessionLifetime).Unix(),
		"sub":   admin.ID,
	})
	return token.SignedString(util.GetJWTSecretByte())
}

// SessionInfo groups parameters for creating a session to avoid long argument lists.
type SessionInfo struct {
	AdminID uint
	Token   string
	Client  clientInfo
	Expires time.Time
}

func recordSession(db *gorm.DB, info SessionInfo) (model.Session, error) {
	session := model.Session{
		AdminID:      info.AdminID,
		SessionToken: info.Token,
		ExpiresAt:    info.Expires,
		ClientIP:     info.Client.IP,
		Browser:      info.Client.Agent,
	}
	err := db.Create(&session).Error
	return session, err
}

func finalizeLogin(ctx loginContext, admin *model.Admin, plain string) {
	if err := resetFailedAttempts(ctx.DB, admin); err != nil {
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventSuspiciousActivity,
			AdminID:   fmt.Sprintf("%d", admin.ID),
			Email:     admin.Email,
			IP:        ctx.CI.IP,
			Message:   fmt.Sprintf("Failed to reset failed attempts: %v", err),
		})
	}

	_ = upgradeLegacyPasswordIfNeeded(ctx.DB, admin, plain, ctx.CI)

	tokenString, err := createJWTToken(*admin)
	if err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "token generation failed")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	session, err := recordSession(ctx.DB, SessionInfo{
		AdminID: admin.ID,
		Token:   tokenString,
		Client:  ctx.CI,
		Expires: time.Now().Add(sessionLifetime),
	})
	if err != nil {
		util.LogLoginFailure(ctx.Email, ctx.CI.IP, ctx.CI.Agent, "session creation failed")
		util.CallServerError(ctx.C, util.APIErrorParams{Msg: "Failed to record session", Err: err})
		return
	}

	// Mirror the session into Redis (best-effort)
	_ = util.CacheSession(tokenString, session.AdminID, time.Until(session.ExpiresAt))
	_ = util.AddSessionToAdminSet(session.AdminID, tokenString)

	util.AdminEmailCacheSet(admin.ID, admin.Email)
	util.LogLoginSuccess(admin.ID, admin.Email, ctx.CI.IP, ctx.CI.Agent)
	util.CallSuccessOK(ctx.C, util.APISuccessParams{
		Msg:  "Login successful",
		Data: LoginResponse{Token: tokenString, AdminID: admin.ID, Name: admin.Name},
	})
}

// Logout godoc
// @Summary      Admin logout
// @Description  Invalidate the admin session token
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Logout successful"
// @Failure      400 {object} util.APIResponse "Session not found"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /logout [delete]
func Logout(c *gin.Context) {
	sessionToken := c.GetHeader("session-token")
	if sessionToken == "" {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Session token not provided",
			Err: fmt.Errorf("session token not provided"),
		})
		c.Abort()
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var session model.Session
	if err := db.Where("session_token = ?", sessionToken).First(&session).Error; err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Session not found",
			Err: err,
		})
		return
	}

	var admin model.Admin
	if err := db.First(&admin, session.AdminID).Error; err == nil {
		util.LogLogout(admin.ID, admin.Email, c.ClientIP(), c.Request.UserAgent())
	}

	if err := db.Where("session_token = ?", sessionToken).Delete(&session).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete session",
			Err: err,
		})
		return
	}

	_ = util.DropSession(sessionToken)
	_ = util.RemoveSessionTokenFromAdminSet(session.AdminID, sessionToken)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Logout successful",
	})
}

// VerifyPasswordRequest represents the request body for password verification
type VerifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// VerifyPassword godoc
// @Summary      Verify current admin's password
// @Description  Validate the provided current password for the authenticated admin
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body VerifyPasswordRequest true "Password to verify"
// @Success      200 {object} util.APIResponse "Password verified"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Invalid password or unauthorized"
// @Failure      404 {object} util.APIResponse "Admin not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /verify-password [post]
func VerifyPassword(c *gin.Context) {
	var req VerifyPasswordRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Admin not authenticated",
			Err: fmt.Errorf("admin id not found in context"),
		})
		return
	}

	var admin model.Admin
	if err := db.First(&admin, adminID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{
				Msg: "Admin not found",
				Err: err,
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve admin",
			Err: err,
		})
		return
	}

	match, err := util.VerifyPassword(req.Password, admin.Password, admin.PasswordSalt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Password verification failed",
			Err: err,
		})
		return
	}

	if match {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Password verified",
			Data: map[string]bool{"verified": true},
		})
		return
	}

	util.CallUserNotAuthorized(c, util.APIErrorParams{
		Msg: "Invalid password",
		Err: fmt.Errorf("provided password does not match"),
	})
}
