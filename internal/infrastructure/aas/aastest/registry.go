// Package aastest поднимает реестр AAS в памяти для тестов.
package aastest

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Shell оболочка автомобиля в тестовом реестре.
type Shell struct {
	IDShort  string
	Plan     string // JSON вложения Inspection_Plan, пустой: вложения нет
	Response string // JSON вложения Response_Placeholder
}

// Upload одна запись PUT в Response_Placeholder.
type Upload struct {
	IDShort     string
	FileName    string
	ContentType string
	Body        []byte
}

// Registry реестр и сервер подмоделей на одном httptest.Server.
// Все оболочки указывают на один хост, поэтому планы различаются только для первой оболочки.
type Registry struct {
	Server *httptest.Server

	mu      sync.Mutex
	shells  map[string]*Shell
	order   []string
	uploads []Upload
}

// New запускает реестр с заданными оболочками.
func New(shells ...Shell) *Registry {
	r := &Registry{shells: make(map[string]*Shell)}
	for _, s := range shells {
		s := s
		r.shells[s.IDShort] = &s
		r.order = append(r.order, s.IDShort)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/shell-descriptors", r.handleShells)
	mux.HandleFunc("/submodels", r.handleSubmodels)
	mux.HandleFunc("/submodels/", r.handleAttachment)
	r.Server = httptest.NewServer(mux)
	return r
}

// URL адрес списка оболочек
func (r *Registry) URL() string {
	return r.Server.URL + "/shell-descriptors"
}

// Close останавливает сервер
func (r *Registry) Close() {
	r.Server.Close()
}

// Uploads возвращает загруженные ответы в порядке поступления
func (r *Registry) Uploads() []Upload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Upload(nil), r.uploads...)
}

// PlanID идентификатор подмодели Inspection_Plan оболочки
func PlanID(idShort string) string {
	return "urn:" + strings.ToLower(idShort) + ":sm:plan"
}

// ResponseID идентификатор подмодели Response_Plan оболочки
func ResponseID(idShort string) string {
	return "urn:" + strings.ToLower(idShort) + ":sm:response"
}

func (r *Registry) handleShells(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	type endpoint struct {
		ProtocolInformation struct {
			Href string `json:"href"`
		} `json:"protocolInformation"`
	}
	type shell struct {
		IDShort   string     `json:"idShort"`
		Endpoints []endpoint `json:"endpoints"`
	}

	out := struct {
		Result []shell `json:"result"`
	}{Result: []shell{}}
	for _, id := range r.order {
		var ep endpoint
		ep.ProtocolInformation.Href = r.Server.URL + "/shells/" + id
		out.Result = append(out.Result, shell{IDShort: id, Endpoints: []endpoint{ep}})
	}
	writeJSON(w, out)
}

func (r *Registry) handleSubmodels(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	type submodel struct {
		IDShort string `json:"idShort"`
		ID      string `json:"id"`
	}
	out := struct {
		Result []submodel `json:"result"`
	}{Result: []submodel{}}
	for _, id := range r.order {
		out.Result = append(out.Result,
			submodel{IDShort: "Inspection_Plan", ID: PlanID(id)},
			submodel{IDShort: "Response_Plan", ID: ResponseID(id)},
		)
	}
	writeJSON(w, out)
}

func (r *Registry) handleAttachment(w http.ResponseWriter, req *http.Request) {
	// /submodels/{id}/submodel-elements/{element}/attachment
	parts := strings.Split(strings.TrimPrefix(req.URL.Path, "/submodels/"), "/")
	if len(parts) != 4 || parts[1] != "submodel-elements" || parts[3] != "attachment" {
		http.NotFound(w, req)
		return
	}
	rawID, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		http.NotFound(w, req)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	shell, element := r.submodelOwner(string(rawID)), parts[2]
	if shell == nil {
		http.NotFound(w, req)
		return
	}

	switch {
	case req.Method == http.MethodGet && element == "Inspection_Plan":
		writeRaw(w, req, shell.Plan)
	case req.Method == http.MethodGet && element == "Response_Placeholder":
		writeRaw(w, req, shell.Response)
	case req.Method == http.MethodPut && element == "Response_Placeholder":
		file, header, err := req.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)

		r.uploads = append(r.uploads, Upload{
			IDShort:     shell.IDShort,
			FileName:    req.URL.Query().Get("fileName"),
			ContentType: header.Header.Get("Content-Type"),
			Body:        body,
		})
		shell.Response = string(body)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, req)
	}
}

func (r *Registry) submodelOwner(id string) *Shell {
	for _, s := range r.shells {
		if id == PlanID(s.IDShort) || id == ResponseID(s.IDShort) {
			return s
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, req *http.Request, body string) {
	if body == "" {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}
