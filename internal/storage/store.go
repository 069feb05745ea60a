// Package storage keeps bench sessions on disk: a metadata.json per session
// plus a frames.csv with one row per scheduled frame.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/lifesim/internal/controller"
	"github.com/san-kum/lifesim/internal/geometry"
	"github.com/san-kum/lifesim/internal/telemetry"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SessionMetadata struct {
	ID          string            `json:"id"`
	Engine      string            `json:"engine"`
	Timestamp   time.Time         `json:"timestamp"`
	Seed        int64             `json:"seed"`
	Geometry    geometry.Geometry `json:"geometry"`
	Speed       float64           `json:"speed"`
	Density     float64           `json:"density"`
	Frames      int               `json:"frames"`
	Generations uint64            `json:"generations"`
	Population  int               `json:"population"`
	Elapsed     float64           `json:"elapsed_seconds"`
	Telemetry   telemetry.Stats   `json:"telemetry"`
}

// Frame is one row of frames.csv.
type Frame struct {
	Index      int
	Ticks      int
	Generation uint64
	FPS        float64
	Mean       float64
	Min        float64
	Max        float64
}

var frameHeader = []string{"frame", "ticks", "generation", "fps", "mean", "min", "max"}

// Recorder collects frames from a controller run.
type Recorder struct {
	Frames []Frame
}

func (r *Recorder) OnFrame(f controller.FrameResult) {
	r.Frames = append(r.Frames, Frame{
		Index:      len(r.Frames),
		Ticks:      f.Ticks,
		Generation: f.Generation,
		FPS:        f.Stats.Latest,
		Mean:       f.Stats.Mean,
		Min:        f.Stats.Min,
		Max:        f.Stats.Max,
	})
}

// Save writes meta and frames under a fresh session directory and returns
// its ID. meta.ID, Timestamp and Frames are filled in here.
func (s *Store) Save(meta SessionMetadata, frames []Frame) (string, error) {
	ts := s.now()
	id := fmt.Sprintf("%s_%d", meta.Engine, ts.UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}

	meta.ID = id
	meta.Timestamp = ts
	meta.Frames = len(frames)

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	if err := ExportJSON(metaFile, meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := WriteFrames(csvFile, frames); err != nil {
		return "", fmt.Errorf("write frames: %w", err)
	}
	return id, nil
}

// WriteFrames writes frames as CSV with a header row.
func WriteFrames(out io.Writer, frames []Frame) error {
	w := csv.NewWriter(out)
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Index),
			strconv.Itoa(f.Ticks),
			strconv.FormatUint(f.Generation, 10),
			strconv.FormatFloat(f.FPS, 'f', 3, 64),
			strconv.FormatFloat(f.Mean, 'f', 3, 64),
			strconv.FormatFloat(f.Min, 'f', 3, 64),
			strconv.FormatFloat(f.Max, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportJSON writes v as indented JSON.
func ExportJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable session, oldest first. A missing base
// directory is an empty list.
func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		sessions = append(sessions, *meta)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.Before(sessions[j].Timestamp)
	})
	return sessions, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", id, err)
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back. Malformed rows are skipped.
func (s *Store) LoadFrames(id string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Frame{}, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(frameHeader) {
			continue
		}
		f, err := parseFrame(rec)
		if err != nil {
			continue
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseFrame(rec []string) (Frame, error) {
	var f Frame
	var err error
	if f.Index, err = strconv.Atoi(rec[0]); err != nil {
		return f, err
	}
	if f.Ticks, err = strconv.Atoi(rec[1]); err != nil {
		return f, err
	}
	if f.Generation, err = strconv.ParseUint(rec[2], 10, 64); err != nil {
		return f, err
	}
	floats := []*float64{&f.FPS, &f.Mean, &f.Min, &f.Max}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(rec[3+i], 64); err != nil {
			return f, err
		}
	}
	return f, nil
}

// Series extracts one column of frames for plotting.
func Series(frames []Frame, column string) ([]float64, error) {
	out := make([]float64, len(frames))
	for i, f := range frames {
		switch column {
		case "fps":
			out[i] = f.FPS
		case "mean":
			out[i] = f.Mean
		case "min":
			out[i] = f.Min
		case "max":
			out[i] = f.Max
		case "ticks":
			out[i] = float64(f.Ticks)
		case "generation":
			out[i] = float64(f.Generation)
		default:
			return nil, fmt.Errorf("unknown column %q", column)
		}
	}
	return out, nil
}
