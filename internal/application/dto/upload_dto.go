package dto

// UploadResponse imagen almacenada.
type UploadResponse struct {
	URL         string `json:"url"`
	FileName    string `json:"nombreArchivo"`
	ContentType string `json:"tipo"`
	Size        int64  `json:"tamano"`
}

// UploadManyResponse resultado de POST /upload/imagenes.
type UploadManyResponse struct {
	Files []UploadResponse `json:"archivos"`
	URLs  []string         `json:"urls"`
}
