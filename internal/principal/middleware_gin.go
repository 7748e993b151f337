package principal

import "github.com/gin-gonic/gin"

// GinMiddleware resolves the caller and stashes it in the request context.
func GinMiddleware(res Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := res.Resolve(c.Request.Context(), c.Request)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}
