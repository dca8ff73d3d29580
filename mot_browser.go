package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"

	"github.com/nier-tools/mot_browser/config"
	"github.com/nier-tools/mot_browser/motion"
	"github.com/nier-tools/mot_browser/pack/mot"
	"github.com/nier-tools/mot_browser/utils"
	"github.com/nier-tools/mot_browser/web"
)

func main() {
	var addr, dir, motPath, projectPath, gltfOut, encoding string
	var check bool
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&dir, "dir", "", "Path to folder with mot files")
	flag.StringVar(&motPath, "mot", "", "Path to a single mot file to dump or export")
	flag.StringVar(&projectPath, "project", "", "Path to yaml project file with translate table and rest pose")
	flag.StringVar(&gltfOut, "gltf", "", "Write sampled motion to this glb file (requires -mot and -project)")
	flag.StringVar(&encoding, "encoding", "", "Text encoding of motion names")
	flag.BoolVar(&check, "parsecheck", false, "Decode every mot file in -dir and report failures")
	flag.Parse()

	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
			log.Fatalf("%v. Available encodings: %v", err, config.ListEncodings())
		}
	}

	var project *config.Project
	if projectPath != "" {
		var err error
		if project, err = config.LoadProject(projectPath); err != nil {
			log.Fatalf("Failed to load project: %v", err)
		}
	}

	switch {
	case check:
		if dir == "" {
			log.Fatal("-parsecheck requires -dir")
		}
		parseCheck(dir)
	case gltfOut != "":
		if motPath == "" || project == nil {
			log.Fatal("-gltf requires -mot and -project")
		}
		if err := exportGLTF(motPath, gltfOut, project); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
	case motPath != "":
		if err := dumpMotion(motPath); err != nil {
			log.Fatalf("Dump failed: %v", err)
		}
	case dir != "":
		log.Fatal(web.StartServer(addr, dir, project))
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func loadMotionFile(path string) (*mot.File, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return mot.NewFromData(data)
}

func dumpMotion(path string) error {
	f, err := loadMotionFile(path)
	if err != nil {
		return err
	}
	utils.Dump(f)
	return nil
}

func exportGLTF(motPath, outPath string, project *config.Project) error {
	f, err := loadMotionFile(motPath)
	if err != nil {
		return err
	}

	m, err := motion.Assemble(f, project.TranslateTable, project.BoneCount, project.RestOffsets)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := m.ExportGLTF(out, project.FPS); err != nil {
		return err
	}

	log.Printf("[export] %q: %v bones, %v frames -> %q", f.Name, len(m.Tracks), m.FrameCount, outPath)
	return nil
}
