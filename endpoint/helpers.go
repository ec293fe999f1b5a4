package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/middleware"
	"github.com/pijatjogja/pijatjogja-api/util"
)

// bindJSONOrRespond binds the request body into dst, responding with a user
// error and returning false when the payload is invalid.
func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

// getDBOrRespond fetches the request-scoped DB handle, responding with a
// server error and returning false when it is missing.
func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}
