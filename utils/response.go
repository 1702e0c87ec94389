package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// JSONError writes the error envelope shared by every handler.
func JSONError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{"status": "error", "code": errCode, "message": message})
}

func AbortWithError(c *gin.Context, code int, errCode, message string) {
	c.AbortWithStatusJSON(code, gin.H{"status": "error", "code": errCode, "message": message})
}
