package devserver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
	"github.com/sekolahdigital/tamuadmin/internal/validate"
)

// resourceDef describes one managed collection: how it is searched and
// filtered, which associations load with it, and the Indonesian labels used
// in response messages.
type resourceDef[T any, F any] struct {
	label      string            // "Siswa", "Jabatan", ...
	searchCols []string          // columns matched by ?search=
	filterCols map[string]string // query param → column for exact filters
	preloads   []string          // gorm associations loaded with list/detail
	apply      func(model *T, form F)
	idCol      string // primary key column, "id" when empty
	notFound   string // not-found message, derived from label when empty
}

// resourceHandler serves the Laravel-style CRUD contract for one collection.
type resourceHandler[T any, F any] struct {
	db  *gorm.DB
	def resourceDef[T, F]
}

func newResourceHandler[T any, F any](db *gorm.DB, def resourceDef[T, F]) *resourceHandler[T, F] {
	if def.idCol == "" {
		def.idCol = "id"
	}
	return &resourceHandler[T, F]{db: db, def: def}
}

// List handles GET /{resource} with page, rows_per_page, search, and the
// resource's filters. The response mirrors Laravel's paginator envelope,
// including null from/to on an empty page.
func (h *resourceHandler[T, F]) List(c *gin.Context) {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "rows_per_page", domain.DefaultRowsPerPage)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = domain.DefaultRowsPerPage
	}

	q := h.db.WithContext(c.Request.Context()).Model(new(T))
	q = h.applySearch(q, c.Query("search"))
	q = h.applyFilters(q, c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		fail(c, domain.NewAppError(domain.CodeInternal, "Server Error", err))
		return
	}

	lastPage := int(total+int64(perPage)-1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	var rows []T
	find := q.Offset((page - 1) * perPage).Limit(perPage).Order(h.def.idCol + " desc")
	for _, p := range h.def.preloads {
		find = find.Preload(p)
	}
	if err := find.Find(&rows).Error; err != nil {
		fail(c, domain.NewAppError(domain.CodeInternal, "Server Error", err))
		return
	}
	if rows == nil {
		rows = []T{}
	}

	var from, to *int
	if len(rows) > 0 {
		f := (page-1)*perPage + 1
		t := f + len(rows) - 1
		from, to = &f, &t
	}

	c.JSON(200, gin.H{
		"data":         rows,
		"current_page": page,
		"last_page":    lastPage,
		"total":        total,
		"from":         from,
		"to":           to,
	})
}

// Get handles GET /{resource}/{id}.
func (h *resourceHandler[T, F]) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		fail(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context())
	for _, p := range h.def.preloads {
		q = q.Preload(p)
	}

	var model T
	if err := q.First(&model, h.def.idCol+" = ?", id).Error; err != nil {
		fail(c, h.mapDBError(err))
		return
	}
	ok(c, "", model)
}

// Create handles POST /{resource}.
func (h *resourceHandler[T, F]) Create(c *gin.Context) {
	form, valid := h.bindForm(c)
	if !valid {
		return
	}

	var model T
	h.def.apply(&model, form)
	if err := h.db.WithContext(c.Request.Context()).Create(&model).Error; err != nil {
		fail(c, h.mapDBError(err))
		return
	}
	ok(c, h.def.label+" berhasil ditambahkan!", nil)
}

// Update handles PUT /{resource}/{id}.
func (h *resourceHandler[T, F]) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		fail(c, err)
		return
	}
	form, valid := h.bindForm(c)
	if !valid {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var model T
	if err := db.First(&model, h.def.idCol+" = ?", id).Error; err != nil {
		fail(c, h.mapDBError(err))
		return
	}
	h.def.apply(&model, form)
	if err := db.Save(&model).Error; err != nil {
		fail(c, h.mapDBError(err))
		return
	}
	ok(c, h.def.label+" berhasil diperbarui!", nil)
}

// Delete handles DELETE /{resource}/{id}.
func (h *resourceHandler[T, F]) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		fail(c, err)
		return
	}

	result := h.db.WithContext(c.Request.Context()).Delete(new(T), h.def.idCol+" = ?", id)
	if result.Error != nil {
		fail(c, h.mapDBError(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		fail(c, domain.NewAppError(domain.CodeNotFound, h.notFoundMessage(), nil))
		return
	}
	ok(c, h.def.label+" berhasil dihapus!", nil)
}

func (h *resourceHandler[T, F]) bindForm(c *gin.Context) (F, bool) {
	var form F
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, domain.NewAppError(domain.CodeValidation, "Invalid request body", nil))
		return form, false
	}
	if err := validate.Struct(form); err != nil {
		fail(c, err)
		return form, false
	}
	return form, true
}

func (h *resourceHandler[T, F]) applySearch(q *gorm.DB, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(h.def.searchCols) == 0 {
		return q
	}
	pattern := "%" + search + "%"
	conds := make([]string, len(h.def.searchCols))
	args := make([]any, len(h.def.searchCols))
	for i, col := range h.def.searchCols {
		conds[i] = col + " LIKE ?"
		args[i] = pattern
	}
	return q.Where(strings.Join(conds, " OR "), args...)
}

func (h *resourceHandler[T, F]) applyFilters(q *gorm.DB, c *gin.Context) *gorm.DB {
	for param, col := range h.def.filterCols {
		if v := c.Query(param); v != "" {
			q = q.Where(col+" = ?", v)
		}
	}
	return q
}

func (h *resourceHandler[T, F]) notFoundMessage() string {
	if h.def.notFound != "" {
		return h.def.notFound
	}
	return fmt.Sprintf("Data %s tidak ditemukan", strings.ToLower(h.def.label))
}

func (h *resourceHandler[T, F]) mapDBError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewAppError(domain.CodeNotFound, h.notFoundMessage(), err)
	}
	if isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeValidation, h.def.label+" sudah terdaftar", nil)
	}
	return domain.NewAppError(domain.CodeInternal, "Server Error", err)
}

// isDuplicateKeyError detects unique constraint violations by message, needed
// because the pure-Go SQLite driver does not translate them to
// gorm.ErrDuplicatedKey.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

func parseID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, domain.NewAppError(domain.CodeValidation, "Invalid id", nil)
	}
	return id, nil
}

func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
