package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matsen/teiextract/internal/article"
	"github.com/matsen/teiextract/internal/author"
	"github.com/matsen/teiextract/internal/export"
	"github.com/matsen/teiextract/internal/pdf"
	"github.com/matsen/teiextract/internal/storage"
)

// HealthResponse reports what the server can do.
type HealthResponse struct {
	Status string `json:"status"`
	Store  bool   `json:"store"`
}

// ExtractResponse is the result of /parse and /process.
type ExtractResponse struct {
	ID      string           `json:"id"`
	Stored  bool             `json:"stored"`
	PDF     *pdf.Info        `json:"pdf,omitempty"`
	Article *article.Article `json:"article"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok", Store: s.db != nil})
}

func (s *Server) parse(c *fiber.Ctx) error {
	store, err := s.wantStore(c)
	if err != nil {
		return err
	}

	// The request body buffer is reused after the handler returns.
	data := append([]byte(nil), c.Body()...)
	rec, err := s.ex.TEI(data, c.Query("source", "request"))
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return s.respond(c, rec, nil, store)
}

func (s *Server) process(c *fiber.Ctx) error {
	store, err := s.wantStore(c)
	if err != nil {
		return err
	}

	data := append([]byte(nil), c.Body()...)
	res, err := s.ex.PDF(c.UserContext(), data, c.Query("source", "upload.pdf"))
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}
	return s.respond(c, res.Record, res.PDF, store)
}

func (s *Server) wantStore(c *fiber.Ctx) (bool, error) {
	store := c.QueryBool("store", false)
	if store && s.db == nil {
		return false, fiber.NewError(fiber.StatusBadRequest, "no article store configured")
	}
	return store, nil
}

func (s *Server) respond(c *fiber.Ctx, rec *storage.Record, info *pdf.Info, store bool) error {
	if store {
		if err := s.db.Put(*rec); err != nil {
			return err
		}
		s.logger.Info("stored article", "id", rec.ID, "source", rec.Source)
	}
	return c.JSON(ExtractResponse{ID: rec.ID, Stored: store, PDF: info, Article: rec.Article})
}

func (s *Server) listArticles(c *fiber.Ctx) error {
	queries := author.ParseQueries(queryAll(c, "author"))
	limit := c.QueryInt("limit", DefaultLimit)

	fetch := limit
	if len(queries) > 0 {
		fetch = 0
	}
	recs, err := s.db.List(fetch)
	if err != nil {
		return err
	}
	return c.JSON(storage.Summaries(author.Filter(recs, queries, storage.Record.Authors, limit)))
}

func (s *Server) search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing query parameter q")
	}
	queries := author.ParseQueries(queryAll(c, "author"))
	limit := c.QueryInt("limit", DefaultLimit)

	fetch := limit
	if len(queries) > 0 {
		fetch = 0
	}
	recs, err := s.db.Search(q, fetch)
	if err != nil {
		return err
	}
	return c.JSON(storage.Summaries(author.Filter(recs, queries, storage.Record.Authors, limit)))
}

func (s *Server) getArticle(c *fiber.Ctx) error {
	rec, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

func (s *Server) articleCitations(c *fiber.Ctx) error {
	rec, err := s.lookup(c)
	if err != nil {
		return err
	}
	rows, err := s.db.Citations(rec.ID)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []storage.CitationRow{}
	}
	return c.JSON(rows)
}

func (s *Server) articleBibTeX(c *fiber.Ctx) error {
	rec, err := s.lookup(c)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/x-bibtex; charset=utf-8")
	return c.SendString(export.ArticleToBibTeX(rec.ID, rec.Article))
}

func (s *Server) lookup(c *fiber.Ctx) (*storage.Record, error) {
	id := c.Params("id")
	rec, err := s.db.Get(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "article "+id+" not found")
	}
	return rec, nil
}

func queryAll(c *fiber.Ctx, key string) []string {
	var out []string
	for _, v := range c.Context().QueryArgs().PeekMulti(key) {
		out = append(out, string(v))
	}
	return out
}
