package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes the uniform failure envelope. Only the human-readable message
// and the taxonomy code are exposed to the client.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"data": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
