package controllers

import (
	"academia/config"
	"academia/middleware"
	"academia/utils"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var allowedUploadExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

// AdminUploadAsset stores a cover image, certificate template or lesson
// document and returns its public URL for use in course and block fields.
func AdminUploadAsset(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only PNG, JPG and PDF files are allowed!", nil)
	}

	savedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully!", fiber.Map{
		"url": utils.GetFileURL(savedPath),
	})
}
