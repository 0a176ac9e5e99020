package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"price-recon/internal/config"
	"price-recon/internal/fileio"
	"price-recon/internal/middleware"
	"price-recon/internal/reconcile/model"
	"price-recon/internal/reconcile/profile"
	recSvc "price-recon/internal/reconcile/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Response — отчёт сверки плюс статистика предобработки прайса.
type Response struct {
	model.Report
	Preprocess profile.Stats `json:"preprocess"`
}

// Reconcile возвращает http.HandlerFunc, чтобы вы могли вызвать его как
// r.Post("/reconcile", recHnd.Reconcile(cfg, logger)) в роутере.
//
// multipart: supplier, base (файлы); profile, threshold, change_percent,
// enable_codes, enable_fuzzy, supplier_header_row, base_header_row, format=json|xlsx.
func Reconcile(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := logger
		if rid := middleware.GetRequestID(r); rid != "" {
			log = logger.With().Str("req_id", rid).Logger()
		}
		defer r.Body.Close()

		maxMem := int64(cfg.MaxUploadMB) << 20
		if maxMem <= 0 {
			maxMem = 32 << 20
		}
		if err := r.ParseMultipartForm(maxMem); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
				return
			}
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}

		supplierName, supplierRows, err := readUpload(r, atoi(r.FormValue("supplier_header_row"), 1), "supplier", "fileA")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		_, baseRows, err := readUpload(r, atoi(r.FormValue("base_header_row"), 1), "base", "fileB")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		want := r.FormValue("profile")
		if want == "" {
			want = cfg.DefaultProfile
		}
		p, ok := profile.Resolve(want, supplierName)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown profile %q", want))
			return
		}

		opt := p.Apply(model.Options{
			Threshold:     toFloat(r.FormValue("threshold"), cfg.Threshold),
			ChangePercent: toFloat(r.FormValue("change_percent"), cfg.ChangePercent),
			EnableCodes:   toBool(r.FormValue("enable_codes"), true),
			EnableFuzzy:   toBool(r.FormValue("enable_fuzzy"), true),
		})

		supplierRows, baseRows, st := p.Prepare(supplierRows, baseRows)
		log.Debug().
			Str("profile", p.Name).
			Int("supplier_rows", st.Total).
			Int("removed_by_price", st.ByPrice).
			Int("removed_by_balance", st.ByBalance).
			Int("base_rows", len(baseRows)).
			Msg("preprocess")

		rep, err := recSvc.Run(supplierRows, baseRows, opt)
		if err != nil {
			if recSvc.IsMisconfigured(err) {
				log.Warn().Err(err).Str("profile", p.Name).Msg("reconcile misconfigured")
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			log.Error().Err(err).Msg("reconcile")
			writeError(w, http.StatusInternalServerError, "internal")
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		if r.FormValue("format") == "xlsx" {
			w.Header().Set("Content-Type", xlsxContentType)
			w.Header().Set("Content-Disposition",
				fmt.Sprintf(`attachment; filename="recon_%s_%s.xlsx"`, p.Name, start.Format("20060102_150405")))
			if err := fileio.WriteReportXLSX(w, rep); err != nil {
				log.Error().Err(err).Msg("write xlsx")
				return
			}
		} else {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(Response{Report: rep, Preprocess: st}); err != nil {
				log.Error().Err(err).Msg("write json")
				return
			}
		}

		log.Info().
			Str("profile", p.Name).
			Int("supplier", rep.SupplierTotal).
			Int("base", rep.BaseTotal).
			Int("article", len(rep.Matches)).
			Int("bracket", len(rep.BracketMatches)).
			Int("code", len(rep.CodeMatches)).
			Int("fuzzy", len(rep.FuzzyMatches)).
			Int("new", rep.UnmatchedCount).
			Int("price_changes", len(rep.PriceChanges)).
			Dur("elapsed", time.Since(start)).
			Msg("reconcile done")
	}
}

// Profiles отдаёт встроенные профили поставщиков (GET /profiles).
func Profiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, profile.All())
}

// readUpload читает первый найденный файл из полей names.
func readUpload(r *http.Request, headerRow int, names ...string) (string, []map[string]string, error) {
	var (
		file   multipart.File
		header *multipart.FileHeader
		err    error
	)
	for _, n := range names {
		file, header, err = r.FormFile(n)
		if err == nil {
			break
		}
	}
	if err != nil {
		return "", nil, fmt.Errorf("missing %s: %w", names[0], err)
	}
	defer file.Close()

	rows, err := fileio.ReadAnyMaps(file, header.Filename, headerRow)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", names[0], err)
	}
	return header.Filename, rows, nil
}
