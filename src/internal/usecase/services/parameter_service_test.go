package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

func TestDailyLateRateFallsBackToDefault(t *testing.T) {
	f := newFixture(t)

	assertDecimal(t, "daily rate", f.params.DailyLateRate(context.Background()), "0.0275")
}

func TestSetParameterRejectsInvalidRate(t *testing.T) {
	f := newFixture(t)

	_, err := f.params.SetParameter(context.Background(), models.SetParameterRequest{Key: domain.ParamDailyLateRate, Value: "abc"})
	if !errors.Is(err, commons.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	assertDecimal(t, "daily rate", f.params.DailyLateRate(context.Background()), "0.0275")
}

func TestCompanyIdentityReadsParameters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.params.SetParameter(ctx, models.SetParameterRequest{Key: "empresa_nombre", Value: "Inmobiliaria del Este"}); err != nil {
		t.Fatalf("expected parameter update, got %v", err)
	}

	identity := f.params.CompanyIdentity(ctx)
	if identity.Name != "Inmobiliaria del Este" {
		t.Fatalf("expected company name from parameters, got %q", identity.Name)
	}

	list, err := f.params.ListParameters(ctx)
	if err != nil || len(*list.Data) != 1 || (*list.Data)[0].Key != domain.ParamCompanyName {
		t.Fatalf("expected one stored parameter, got %+v (%v)", list.Data, err)
	}
}
