package web

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/nier-tools/mot_browser/motion"
	"github.com/nier-tools/mot_browser/pack/mot"
	"github.com/nier-tools/mot_browser/status"
	"github.com/nier-tools/mot_browser/utils"
	"github.com/nier-tools/mot_browser/webutils"
)

func loadMotion(name string) (*mot.File, error) {
	name = filepath.Base(name)
	data, err := ioutil.ReadFile(filepath.Join(ServerDirectory, name))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %q", name)
	}
	f, err := mot.NewFromData(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse %q", name)
	}
	return f, nil
}

// AjaxRecord decorates a record with its resolved bone and sampled
// curve for the browser.
type AjaxRecord struct {
	*mot.Record
	Kind         string
	Channel      string
	ResolvedBone int // -1 when no project is loaded
	Frames       []float32
}

// AjaxMotion is the browse view of a whole file.
type AjaxMotion struct {
	*mot.File
	Records []*AjaxRecord
}

func ajaxRecord(f *mot.File, rec *mot.Record, sample bool) (*AjaxRecord, error) {
	a := &AjaxRecord{
		Record:       rec,
		Kind:         rec.Kind.String(),
		Channel:      rec.Channel.String(),
		ResolvedBone: -1,
	}
	if rec.Kind == mot.KindTerminator {
		return a, nil
	}
	if ServerProject != nil {
		a.ResolvedBone = mot.ResolveBoneIndex(rec.Bone, ServerProject.TranslateTable, ServerProject.BoneCount)
	}
	if sample {
		frames, err := rec.Sample(int(f.FrameCount))
		if err != nil {
			return nil, err
		}
		a.Frames = frames
	}
	return a, nil
}

func HandlerListMotions(w http.ResponseWriter, r *http.Request) {
	entries, err := ioutil.ReadDir(ServerDirectory)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	files := make([]string, 0)
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".mot") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	webutils.WriteJson(w, files)
}

func HandlerMotion(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	f, err := loadMotion(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	m := &AjaxMotion{File: f}
	for _, rec := range f.Records {
		a, err := ajaxRecord(f, rec, false)
		if err != nil {
			webutils.WriteError(w, err)
			return
		}
		m.Records = append(m.Records, a)
	}
	webutils.WriteJson(w, m)
}

func HandlerMotionRecord(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	param := mux.Vars(r)["record"]
	f, err := loadMotion(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	id, err := strconv.Atoi(param)
	if err != nil || id < 0 || id >= len(f.Records) {
		webutils.WriteError(w, errors.Errorf("Invalid record index %q", param))
		return
	}

	a, err := ajaxRecord(f, f.Records[id], true)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, a)
}

// HandlerDownloadMotion serves the decoded file as a downloadable json
// document, with every record sampled.
func HandlerDownloadMotion(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	f, err := loadMotion(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	m := &AjaxMotion{File: f}
	for _, rec := range f.Records {
		a, err := ajaxRecord(f, rec, true)
		if err != nil {
			webutils.WriteError(w, err)
			return
		}
		m.Records = append(m.Records, a)
	}
	webutils.WriteJsonFile(w, m, strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
}

func HandlerDumpMotion(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	f, err := loadMotion(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, strings.NewReader(utils.SDump(f)), filepath.Base(file)+".txt")
}

func HandlerExportMotion(w http.ResponseWriter, r *http.Request) {
	if ServerProject == nil {
		webutils.WriteError(w, errors.New("No project loaded, bone resolution unavailable"))
		return
	}

	file := mux.Vars(r)["file"]
	f, err := loadMotion(file)
	if err != nil {
		status.Error("Failed to load %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}

	m, err := motion.Assemble(f, ServerProject.TranslateTable, ServerProject.BoneCount, ServerProject.RestOffsets)
	if err != nil {
		status.Error("Failed to assemble %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := m.ExportGLTF(&buf, ServerProject.FPS); err != nil {
		status.Error("Failed to export %q: %v", file, err)
		webutils.WriteError(w, err)
		return
	}

	status.Info("Exported %q (%v bones, %v frames)", file, len(m.Tracks), m.FrameCount)
	webutils.WriteFile(w, &buf, strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))+".glb")
}
