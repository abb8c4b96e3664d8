package main

// General API documentation for swaggo. Regenerate internal/apidocs with
//
//	swag init -g cmd/llmm/docs.go -d ./,./internal/httpapi -o internal/apidocs --packageName apidocs --outputTypes go
//
// and build with -tags=swagger to serve /swagger/.
//
// @title           llmm API
// @version         1.0
// @description     Management and inference proxy in front of a local Ollama daemon.
//
// @contact.name   llmm maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
