package router

import (
	"net/http"

	"elotec-nettbutikk/app/controller"
)

type Controllers struct {
	Export  *controller.ExportController
	Drive   *controller.DriveController
	Metrics http.Handler
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Upload form
	mux.HandleFunc("/", controllers.Export.UploadPage)

	// Upload a catalog export
	mux.HandleFunc("/admin/exports", controllers.Export.Upload)

	// Session summary, preview, tsv, download and pdf
	mux.HandleFunc("/admin/exports/", controllers.Export.Route)

	// Google Drive import
	mux.HandleFunc("/admin/drive/files", controllers.Drive.ListFiles)
	mux.HandleFunc("/admin/drive/import", controllers.Drive.Import)

	if controllers.Metrics != nil {
		mux.Handle("/metrics", controllers.Metrics)
	}
}
