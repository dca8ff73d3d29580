package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/nier-tools/mot_browser/config"
	"github.com/nier-tools/mot_browser/status"
)

// ServerDirectory is the folder of .mot files being browsed.
var ServerDirectory string

// ServerProject is the model side data (translate table, rest pose)
// or nil when browsing without a model.
var ServerProject *config.Project

func StartServer(addr string, dir string, project *config.Project) error {
	ServerDirectory = dir
	ServerProject = project

	r := mux.NewRouter()
	r.HandleFunc("/json/mot", HandlerListMotions)
	r.HandleFunc("/json/mot/{file}", HandlerMotion)
	r.HandleFunc("/json/mot/{file}/{record}", HandlerMotionRecord)
	r.HandleFunc("/download/mot/{file}", HandlerDownloadMotion)
	r.HandleFunc("/dump/mot/{file}", HandlerDumpMotion)
	r.HandleFunc("/gltf/mot/{file}", HandlerExportMotion)
	r.HandleFunc("/ws/status", status.HandlerWebsocket)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
