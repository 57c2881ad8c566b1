// Package jsonstore implementa los puertos de repositorio sobre archivos JSON.
// Cada entidad vive en un archivo con la colección completa; toda mutación es
// un ciclo leer-modificar-reescribir del archivo entero. El diseño asume un
// único proceso escritor: un mutex por colección serializa las operaciones y
// la escritura es atómica (archivo temporal + fsync + rename), de modo que un
// corte a mitad de escritura nunca deja el archivo corrupto.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

// coleccion es un arreglo JSON de registros respaldado por un archivo.
type coleccion[T any] struct {
	path string
	mu   sync.Mutex
}

func newColeccion[T any](path string) *coleccion[T] {
	return &coleccion[T]{path: path}
}

// leer carga la colección y ejecuta fn bajo el lock. Cada llamada relee el
// archivo: no se retiene estado entre páginas.
func (c *coleccion[T]) leer(fn func(items []T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.cargar()
	if err != nil {
		return err
	}
	return fn(items)
}

// mutar carga la colección, aplica fn y reescribe el archivo completo.
// Si fn devuelve error no se escribe nada.
func (c *coleccion[T]) mutar(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.cargar()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.guardar(items)
}

func (c *coleccion[T]) cargar() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: leer %s: %v", domain.ErrBackend, c.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: decodificar %s: %v", domain.ErrBackend, c.path, err)
	}
	return items, nil
}

// guardar reescribe la colección completa con el patrón temporal+fsync+rename.
func (c *coleccion[T]) guardar(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: codificar %s: %v", domain.ErrBackend, c.path, err)
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: crear directorio %s: %v", domain.ErrBackend, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: archivo temporal: %v", domain.ErrBackend, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: escribir %s: %v", domain.ErrBackend, c.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %v", domain.ErrBackend, c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: cerrar temporal: %v", domain.ErrBackend, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renombrar %s: %v", domain.ErrBackend, c.path, err)
	}
	return nil
}

// contiene busca subcadenas sin distinguir mayúsculas. Mismo criterio que el
// ILIKE del backend SQL para que ambos filtren igual.
func contiene(valor, patron string) bool {
	return strings.Contains(strings.ToLower(valor), strings.ToLower(patron))
}

func contieneAlguno(patron string, valores ...*string) bool {
	for _, v := range valores {
		if v != nil && contiene(*v, patron) {
			return true
		}
	}
	return false
}

// paginar corta la página pedida de la lista ya filtrada y ordenada.
func paginar[T any](items []T, page repository.Page) []T {
	page.Normalizar()
	inicio := page.Offset()
	if inicio >= len(items) {
		return nil
	}
	fin := inicio + page.Tamano
	if fin > len(items) {
		fin = len(items)
	}
	return items[inicio:fin]
}
