package handler

import (
	"net/http"

	"dataroom/internal/httputil"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Rooms   *RoomHandler
	Folders *FolderHandler
	Files   *FileHandler
	Search  *SearchHandler
}

// HealthCheck reports liveness
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Me returns the authenticated caller's id
// GET /api/auth/me
func Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]any{"user": map[string]string{"id": userID}})
}

// Register mounts every route on mux (Go 1.22+ method patterns).
// PUT is accepted as an alias of PATCH for older clients.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", HealthCheck)
	mux.HandleFunc("GET /api/auth/me", Me)

	// Data room routes
	mux.HandleFunc("GET /api/datarooms", h.Rooms.ListRooms)
	mux.HandleFunc("POST /api/datarooms", h.Rooms.CreateRoom)
	mux.HandleFunc("GET /api/datarooms/{id}", h.Rooms.GetRoom)
	mux.HandleFunc("PATCH /api/datarooms/{id}", h.Rooms.UpdateRoom)
	mux.HandleFunc("PUT /api/datarooms/{id}", h.Rooms.UpdateRoom)
	mux.HandleFunc("DELETE /api/datarooms/{id}", h.Rooms.DeleteRoom)
	mux.HandleFunc("GET /api/datarooms/{id}/structure", h.Rooms.GetStructure)

	// Folder routes
	mux.HandleFunc("POST /api/folders", h.Folders.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", h.Folders.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", h.Folders.UpdateFolder)
	mux.HandleFunc("PUT /api/folders/{id}", h.Folders.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Folders.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/contents", h.Folders.GetContents)

	// File routes
	mux.HandleFunc("POST /api/files", h.Files.UploadFile)
	mux.HandleFunc("GET /api/files/{id}", h.Files.GetFile)
	mux.HandleFunc("GET /api/files/{id}/download", h.Files.DownloadFile)
	mux.HandleFunc("PATCH /api/files/{id}", h.Files.UpdateFile)
	mux.HandleFunc("PUT /api/files/{id}", h.Files.UpdateFile)
	mux.HandleFunc("DELETE /api/files/{id}", h.Files.DeleteFile)

	// Search routes
	mux.HandleFunc("GET /api/search", h.Search.Search)
	mux.HandleFunc("GET /api/search/autocomplete", h.Search.Autocomplete)
}
