package profile

import "github.com/gin-gonic/gin"

const ContextKey = "profile"

func FromContext(c *gin.Context) (*Profile, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Profile)
	return p, ok && p != nil
}
