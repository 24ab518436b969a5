package gin

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/anet/internal/model"
)

// userFromPath builds a user from the :user_id path parameter. It writes a
// 400 response and returns false when the id is not a positive integer.
func userFromPath(c *gin.Context) (*model.User, bool) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid user id")
		return nil, false
	}
	return &model.User{
		ID:                id,
		CustomerProfileID: c.Query("customer_profile_id"),
	}, true
}
