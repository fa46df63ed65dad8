// Package apidocs - описание HTTP API в формате Swagger 2.0.
package apidocs

import _ "embed"

//go:embed swagger.json
var spec []byte

// SwaggerJSON возвращает встроенный документ.
func SwaggerJSON() []byte {
	return spec
}
