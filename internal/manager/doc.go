// Package manager coordinates sessions, documents and inference calls. It is
// the Service behind the HTTP API and the engine of the CLI ocr command.
//
// Files by concern:
//
//   - manager.go: Manager type, constructor, readiness and shutdown.
//   - config.go: Config and the narrow interfaces the manager depends on.
//   - errors.go: error types carrying HTTP status codes.
//   - session.go: Configure, Clear, Describe and Probe.
//   - documents.go: Upload, PageImage and Text.
//   - process.go: ProcessPage, the single OCR submission path.
//   - status.go: Status reporting.
//   - metrics.go: Prometheus collectors for outcomes and rasterization.
//
// Every network call happens outside the session lock. Page images never change
// after upload, so a page can be read without the lock once it is obtained.
package manager
