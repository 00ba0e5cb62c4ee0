package log

const (
	KeyAppName       = "app"
	KeyTag           = "tag"
	KeyProcess       = "process"
	KeyRequestID     = "requestId"
	KeyTraceID       = "traceId"
	KeySpanID        = "spanId"
	KeyConfig        = "config"
	KeyEmail         = "email"
	KeyUserID        = "userId"
	KeyCartID        = "cartId"
	KeyCartItemID    = "cartItemId"
	KeyOrderID       = "orderId"
	KeyProductID     = "productId"
	KeyQuantity      = "quantity"
	KeyStatus        = "status"
	KeyTotalPrice    = "totalPrice"
	KeyCacheKey      = "cacheKey"
	KeyDbURL         = "dbUrl"
	KeyPathValues    = "pathValues"
	KeyRequestBody   = "requestBody"
	KeyRequestHost   = "host"
	KeyRequestIP     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
)
