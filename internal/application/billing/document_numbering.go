package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/numbering"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
)

// NextNumber reserva el siguiente valor del contador del tipo y devuelve el número formateado.
// seqRepo debe estar ligado a la transacción de BD del emisor para que un fallo posterior
// devuelva el valor al contador.
func NextNumber(ctx context.Context, seqRepo repository.DocumentSequenceRepository, documentType string, issuedAt time.Time) (string, error) {
	if _, ok := numbering.Prefix(documentType); !ok {
		return "", domain.Invalid("tipo de documento desconocido %q", documentType)
	}
	seq, err := seqRepo.Next(ctx, documentType)
	if err != nil {
		return "", fmt.Errorf("next document sequence: %w", err)
	}
	return numbering.Format(documentType, seq, issuedAt)
}
