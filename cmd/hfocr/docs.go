package main

// General API documentation for swaggo. Regenerate docs/ with `swag init -g cmd/hfocr/docs.go`.
//
// @title           hfocr API
// @version         1.0
// @description     Upload images and PDFs, send pages to Hugging Face OCR models, download the text.
//
// @contact.name   hfocr maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
