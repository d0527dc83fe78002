package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"stagecraft/internal/models"
)

func TestGetSiteConfigServesDefaultsWhenUnavailable(t *testing.T) {
	data := &fakeSource{doc: []byte(sampleDoc), token: "sha-1"}
	cfg := &fakeSource{loadErr: errors.New("gone")}
	store := NewStore(data, cfg)

	got := store.GetSiteConfig(context.Background())
	want := models.DefaultSiteConfig()
	if got.SiteName != want.SiteName {
		t.Errorf("got siteName %q, want default %q", got.SiteName, want.SiteName)
	}
}

func TestSiteConfigRoundTrip(t *testing.T) {
	data := &fakeSource{doc: []byte(sampleDoc), token: "sha-1"}
	cfgSrc := &fakeSource{doc: []byte("export const siteConfig: SiteConfig = {};\n"), token: "sha-cfg"}
	store := NewStore(data, cfgSrc)

	cfg := models.DefaultSiteConfig()
	cfg.SiteName = "Studio Aurora"
	cfg.Legal.PIVA = "IT01234567890"

	if err := store.UpdateSiteConfig(context.Background(), cfg); err != nil {
		t.Fatalf("UpdateSiteConfig: %v", err)
	}

	doc := string(cfgSrc.doc)
	if !strings.Contains(doc, "export const siteConfig: SiteConfig = {") {
		t.Errorf("regenerated document missing declaration: %s", doc)
	}
	if !strings.Contains(doc, "export type OpeningHour") {
		t.Errorf("regenerated document missing type preamble")
	}

	got := store.GetSiteConfig(context.Background())
	if got.SiteName != "Studio Aurora" {
		t.Errorf("got siteName %q after round trip", got.SiteName)
	}
	if got.Legal.PIVA != "IT01234567890" {
		t.Errorf("got piva %q after round trip", got.Legal.PIVA)
	}
}
