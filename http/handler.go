package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/fwojciec/marketway"
	"github.com/go-chi/chi/v5"
)

// lineResponse is the wire shape of a line.
type lineResponse struct {
	LineName  string           `json:"line_name"`
	ItemsSold []string         `json:"items_sold"`
	Layout    marketway.Layout `json:"layout"`
	ImageURL  *string          `json:"image_url"`
}

type askRequest struct {
	Question string             `json:"question"`
	Position marketway.Position `json:"position,omitempty"`
}

type searchResponse struct {
	Query   string          `json:"query"`
	Results []*lineResponse `json:"results"`
}

type imageResponse struct {
	IdentifiedItem string            `json:"identified_item"`
	Confidence     float64           `json:"confidence"`
	Lines          []*lineResponse   `json:"lines"`
	Answer         *marketway.Answer `json:"answer"`
}

func (s *Server) lineResponse(l *marketway.Line) *lineResponse {
	resp := &lineResponse{LineName: l.Name, ItemsSold: l.Items, Layout: l.Layout}
	if resp.ItemsSold == nil {
		resp.ItemsSold = []string{}
	}
	if s.Images != nil {
		if name, ok := s.Images.FindImage(l.Name); ok {
			u := s.imagePrefix() + name
			resp.ImageURL = &u
		}
	}
	return resp
}

func (s *Server) lineResponses(lines []*marketway.Line) []*lineResponse {
	out := make([]*lineResponse, len(lines))
	for i, l := range lines {
		out[i] = s.lineResponse(l)
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the MarketWay market assistant"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, r, s.Logger, marketway.Errorf(marketway.EINVALID, "invalid JSON body"))
		return
	}

	answer, err := s.Asker.Ask(r.Context(), marketway.Input{
		Modality: marketway.ModalityTyped,
		Text:     req.Question,
		Position: req.Position,
	})
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	lines, err := s.Directory.SearchLines(r.Context(), q)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: s.lineResponses(lines)})
}

func (s *Server) handleLineInfo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	line, err := s.Directory.FindLine(r.Context(), name)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s.lineResponse(line))
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	route, err := s.Navigator.Navigate(r.Context(), marketway.Position(q.Get("from")), q.Get("line_name"))
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.Directory.History(r.Context())
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"history": history})
}

// handleVoiceQuery answers a recorded question with speech, or with JSON
// when no speech can be produced.
func (s *Server) handleVoiceQuery(w http.ResponseWriter, r *http.Request) {
	if s.VoiceAsker == nil || s.Temp == nil {
		Error(w, r, s.Logger, marketway.Errorf(marketway.EUNAVAILABLE, "voice queries are not available"))
		return
	}

	file, filename, err := s.upload(w, r)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	defer file.Close()

	path, cleanup, err := s.Temp.Save(file, filepath.Ext(filename))
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	defer cleanup()

	res, err := s.VoiceAsker.AskVoice(r.Context(), path, marketway.Position(r.FormValue("position")))
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	if s.Synthesizer != nil {
		audio, err := s.Synthesizer.Synthesize(r.Context(), SpokenText(res.Answer))
		if err == nil {
			w.Header().Set("Content-Type", audio.ContentType)
			w.Header().Set("Content-Disposition", `attachment; filename="response.wav"`)
			w.Header().Set("X-Transcript", headerSafe(res.Transcript))
			w.WriteHeader(http.StatusOK)
			w.Write(audio.Data)
			return
		}
		s.Logger.Warn("speech synthesis failed, answering with text", "err", err)
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleImageIdentify(w http.ResponseWriter, r *http.Request) {
	if s.ImageAsker == nil {
		Error(w, r, s.Logger, marketway.Errorf(marketway.EUNAVAILABLE, "image recognition is not available"))
		return
	}

	file, _, err := s.upload(w, r)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		Error(w, r, s.Logger, marketway.Errorf(marketway.EINVALID, "could not read upload"))
		return
	}

	res, err := s.ImageAsker.AskImage(r.Context(), image, marketway.Position(r.FormValue("position")))
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, imageResponse{
		IdentifiedItem: marketway.HumanizeLabel(res.Classification.Label),
		Confidence:     res.Classification.Confidence,
		Lines:          s.lineResponses(res.Answer.Lines),
		Answer:         res.Answer,
	})
}

// upload returns the multipart "file" field of r.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", marketway.Errorf(marketway.EINVALID, "upload exceeds %d bytes", tooLarge.Limit)
		}
		return nil, "", marketway.Errorf(marketway.EINVALID, "multipart field \"file\" required")
	}
	return file, header.Filename, nil
}

// SpokenText is what the voice endpoint reads aloud: the answer, followed by
// directions when exactly one line matched.
func SpokenText(a *marketway.Answer) string {
	text := a.Text
	if len(a.Routes) == 1 {
		text += " " + a.Routes[0].Directions
	}
	return strings.ReplaceAll(text, "•", "")
}

// headerSafe keeps printable ASCII so a transcript can travel in a header.
func headerSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return ' '
		}
		return r
	}, s)
}
