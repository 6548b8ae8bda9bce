package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// Paginated wraps a list payload with the pagination block used by
// every list endpoint.
func Paginated(c *gin.Context, statusCode int, key string, items any, total int64, page, limit int) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data": gin.H{
			key: items,
			"pagination": gin.H{
				"total": total,
				"page":  page,
				"limit": limit,
			},
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
