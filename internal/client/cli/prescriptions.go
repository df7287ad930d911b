package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dontpanic-sante/dpcli/internal/client/api"
	"github.com/dontpanic-sante/dpcli/internal/client/sync"
)

// Ordos fetches and renders the prescription list.
func (a *App) Ordos(ctx context.Context) error {
	a.prescriptions.Refresh(ctx)
	return nil
}

// Sort reorders the rendered prescription grid by date without refetching.
func (a *App) Sort(ctx context.Context, dir string) error {
	a.prescriptions.SortBy(sync.SortDir(dir))
	return nil
}

// Scan uploads a prescription, either as an image file or as pasted OCR
// text, and routes into the created record.
func (a *App) Scan(ctx context.Context) error {
	path, err := getSimpleText(a.input, "Chemin de l'image (vide pour coller le texte)", os.Stdout)
	if err != nil {
		return err
	}

	var scan api.OrdonnanceScan
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Println("Lecture du fichier impossible :", err)
			return err
		}
		scan.Image = data
		scan.ImageName = filepath.Base(path)
	} else {
		text, err := GetMultiline(a.input, "Texte de l'ordonnance", os.Stdout)
		if err != nil {
			return err
		}
		if text == "" {
			fmt.Println("Rien à envoyer.")
			return nil
		}
		scan.OCRText = text
	}

	validUntil, err := getSimpleText(a.input, "Valide jusqu'au (AAAA-MM-JJ, optionnel)", os.Stdout)
	if err != nil {
		return err
	}
	scan.ValidUntil = validUntil

	id, err := a.prescriptions.Scan(ctx, scan)
	if err != nil {
		fmt.Println(scanMessage(err))
		return err
	}

	fmt.Println("Ordonnance enregistrée :", id)
	return nil
}

func scanMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Session expirée. Reconnecte-toi."
	case errors.Is(err, api.ErrValidation):
		return "Ordonnance illisible. Vérifie l'image ou le texte."
	case errors.Is(err, api.ErrUnavailable):
		return "Serveur injoignable. Réessaie plus tard."
	}
	return "Échec de l'envoi : " + err.Error()
}
