package lightapi

const bearerPrefix = "Bearer "

// GenerateAuthHeader returns the header set that authenticates a request with
// apiKey. The key is used as-is.
func GenerateAuthHeader(apiKey string) map[string]string {
	return map[string]string{
		HeaderAuthorization: bearerPrefix + apiKey,
	}
}
