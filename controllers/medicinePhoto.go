package controllers

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmacy-backend/config"
	"pharmacy-backend/models"
)

const maxPhotoSize = 5 * 1024 * 1024

const photoDir = "./uploads/medicines"

// UploadMedicinePhoto stores the uploaded photo and an 800px-wide
// compressed copy, and saves both URLs on the medicine document.
func UploadMedicinePhoto(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine ID"})
		return
	}

	var medicine models.Medicine
	err = config.MedicineCollection.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&medicine)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds the 5MB limit"})
		return
	}

	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	if fileExt != ".jpg" && fileExt != ".jpeg" && fileExt != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported file format: %s", fileExt)})
		return
	}

	if err := os.MkdirAll(photoDir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}

	filename := fmt.Sprintf("%s_%d%s", id.Hex(), time.Now().Unix(), fileExt)
	fullPath := filepath.Join(photoDir, filename)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	previewName := fmt.Sprintf("%s_%d_preview.jpg", id.Hex(), time.Now().Unix())
	if err := savePreview(fullPath, filepath.Join(photoDir, previewName), fileExt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create photo preview"})
		return
	}

	update := bson.M{"$set": bson.M{
		"photoUrl":        "/uploads/medicines/" + filename,
		"photoPreviewUrl": "/uploads/medicines/" + previewName,
		"updatedAt":       time.Now(),
	}}
	if _, err := config.MedicineCollection.UpdateOne(context.TODO(), bson.M{"_id": id}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medicine"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photoUrl":        "/uploads/medicines/" + filename,
		"photoPreviewUrl": "/uploads/medicines/" + previewName,
	})
}

// savePreview writes an 800px-wide JPEG copy of the stored photo.
func savePreview(srcPath, dstPath, ext string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	var img image.Image
	if ext == ".png" {
		img, err = png.Decode(src)
	} else {
		img, err = jpeg.Decode(src)
	}
	if err != nil {
		return err
	}

	preview := resize.Resize(800, 0, img, resize.Lanczos3)

	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, preview, &jpeg.Options{Quality: 80})
}
