// file: internals/features/casebank/categories/controller/category_controller.go
package controller

import (
	"errors"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	categoryDto "praktikum_backend/internals/features/casebank/categories/dto"
	categoryModel "praktikum_backend/internals/features/casebank/categories/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/cache"
)

const treeCacheTTL = 60 * time.Second

type CategoryController struct {
	DB        *gorm.DB
	Cache     *cache.Cache
	validator *validator.Validate
}

func NewCategoryController(db *gorm.DB, c *cache.Cache) *CategoryController {
	return &CategoryController{DB: db, Cache: c}
}

func (ctl *CategoryController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// GET /categories — flat list + case count per kategori (di-cache)
func (ctl *CategoryController) List(c *fiber.Ctx) error {
	const cacheKey = "categories:list"
	if cached, ok := ctl.Cache.Get(cacheKey); ok {
		if items, ok := cached.([]categoryDto.CategoryResponse); ok {
			return helper.JsonOK(c, "Daftar kategori", items)
		}
	}

	var cats []categoryModel.CategoryModel
	if err := ctl.DB.Order("category_position ASC, category_name ASC").Find(&cats).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}

	// hitung case per kategori sekali jalan
	type countRow struct {
		CaseCategoryID uuid.UUID
		N              int64
	}
	var rows []countRow
	if err := ctl.DB.Model(&caseModel.CaseModel{}).
		Select("case_category_id, COUNT(*) AS n").
		Group("case_category_id").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung cases")
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.CaseCategoryID] = r.N
	}

	items := make([]categoryDto.CategoryResponse, 0, len(cats))
	for i := range cats {
		items = append(items, categoryDto.FromModelCategory(&cats[i], counts[cats[i].CategoryID]))
	}

	ctl.Cache.Set(cacheKey, items, treeCacheTTL)
	return helper.JsonOK(c, "Daftar kategori", items)
}

// POST /categories
func (ctl *CategoryController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req categoryDto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	if req.CategoryParentID != nil {
		var parent categoryModel.CategoryModel
		if err := ctl.DB.First(&parent, "category_id = ?", *req.CategoryParentID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Kategori induk tidak ditemukan")
		}
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Slug kategori sudah dipakai")
	}
	ctl.Cache.InvalidateTopic("categories")

	return helper.JsonCreated(c, "Kategori dibuat", categoryDto.FromModelCategory(m, 0))
}

// PATCH /categories/:id
func (ctl *CategoryController) Patch(c *fiber.Ctx) error {
	ctl.ensureValidator()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "category_id tidak valid")
	}

	var req categoryDto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	var m categoryModel.CategoryModel
	if err := ctl.DB.First(&m, "category_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}

	// tidak boleh jadi parent dirinya sendiri
	if req.CategoryParentID != nil && *req.CategoryParentID == id {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Kategori tidak bisa jadi induk dirinya sendiri")
	}

	req.ApplyToModel(&m)
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Gagal menyimpan kategori (slug duplikat?)")
	}
	ctl.Cache.InvalidateTopic("categories")

	var count int64
	_ = ctl.DB.Model(&caseModel.CaseModel{}).Where("case_category_id = ?", id).Count(&count).Error
	return helper.JsonUpdated(c, "Kategori diperbarui", categoryDto.FromModelCategory(&m, count))
}

// DELETE /categories/:id — ditolak selama masih ada case atau sub-kategori
func (ctl *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "category_id tidak valid")
	}

	var caseCount int64
	if err := ctl.DB.Model(&caseModel.CaseModel{}).
		Where("case_category_id = ?", id).Count(&caseCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung cases")
	}
	if caseCount > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Kategori masih berisi case, pindahkan dulu")
	}

	var childCount int64
	if err := ctl.DB.Model(&categoryModel.CategoryModel{}).
		Where("category_parent_id = ?", id).Count(&childCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung sub-kategori")
	}
	if childCount > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Kategori masih punya sub-kategori")
	}

	res := ctl.DB.Delete(&categoryModel.CategoryModel{}, "category_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kategori")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
	}
	ctl.Cache.InvalidateTopic("categories")

	return helper.JsonDeleted(c, "Kategori dihapus", fiber.Map{"category_id": id})
}
