// Package assistant answers free-text French queries about stock and sales.
// It is a deterministic rule table, not NLU: rules are tried in a fixed
// precedence order (mutations, stock, sales, help) against the lower-cased
// query, and every query resolves to a sentence, never an error.
package assistant

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/killjoy47/MniseCosmetics/models"
)

// Directory is the slice of the store the assistant reads and mutates.
type Directory interface {
	ListProducts() ([]models.Product, error)
	RenameProduct(oldName, newName string) (*models.Product, error)
	AddStock(name string, qty int) (*models.Product, error)
	SalesTotalBetween(start, end time.Time) (total float64, count int64, err error)
}

const (
	msgMutationDenied = "Désolé, seule la patronne peut modifier les produits ou le stock."
	msgReportDenied   = "Désolé, seule la patronne peut voir le bilan global. Demandez 'mon bilan' pour voir vos propres ventes."
	msgStorageDown    = "Je n'arrive pas à consulter la base pour le moment, réessayez dans un instant."
	msgHelp           = "Je ne suis pas sûr de comprendre. Je peux vous aider sur les **stocks** ou le **bilan des ventes**. Essayez : 'Stock Bella' ou 'Bilan aujourd'hui'."
)

// Mutation patterns run against the raw query so the captured names keep
// the user's casing; (?i) makes the keywords themselves case-insensitive.
var (
	renamePattern   = regexp.MustCompile(`(?i)(?:change le nom de|renomme)\s+(.+?)\s+en\s+(.+)`)
	addStockPattern = regexp.MustCompile(`(?i)ajoute\s+(\d+)\s+au stock de\s+(.+)`)
)

type rule struct {
	match  func(q string) bool
	handle func(q, raw, role string) (answer string, handled bool)
}

// Engine is stateless between queries: each call re-reads the directory.
type Engine struct {
	dir   Directory
	clock func() time.Time
}

// New builds an engine. A nil clock means time.Now; tests inject a fixed one.
func New(dir Directory, clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{dir: dir, clock: clock}
}

// Answer resolves one query for the given role.
func (e *Engine) Answer(query, role string) string {
	raw := strings.TrimSpace(query)
	q := strings.ToLower(raw)

	rules := []rule{
		{match: hasMutationKeyword, handle: e.handleMutation},
		{match: matchAny("stock", "reste", "combien"), handle: e.handleStock},
		{match: matchAny("vente", "bilan", "encaissé", "gagné"), handle: e.handleReport},
	}
	for _, r := range rules {
		if !r.match(q) {
			continue
		}
		if answer, handled := r.handle(q, raw, role); handled {
			return answer
		}
	}
	return msgHelp
}

// --- Mutations (admin only) ---

func hasMutationKeyword(q string) bool {
	return strings.Contains(q, "renomme") ||
		strings.Contains(q, "change le nom") ||
		strings.Contains(q, "ajoute")
}

func (e *Engine) handleMutation(_, raw, role string) (string, bool) {
	// A seller asking for a mutation is refused outright, before any
	// pattern matching, so no lookup leaks through.
	if role != models.RoleAdmin {
		return msgMutationDenied, true
	}

	if m := renamePattern.FindStringSubmatch(raw); m != nil {
		oldName := strings.TrimSpace(m[1])
		product, err := e.dir.RenameProduct(oldName, strings.TrimSpace(m[2]))
		if err != nil {
			if msg, known := mutationFailure(err, oldName); known {
				return msg, true
			}
			return msgStorageDown, true
		}
		return fmt.Sprintf("C'est noté, le produit s'appelle maintenant **%s**.", product.Name), true
	}

	if m := addStockPattern.FindStringSubmatch(raw); m != nil {
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			return "", false
		}
		name := strings.TrimSpace(m[2])
		product, err := e.dir.AddStock(name, qty)
		if err != nil {
			if msg, known := mutationFailure(err, name); known {
				return msg, true
			}
			return msgStorageDown, true
		}
		return fmt.Sprintf("C'est fait, le stock de **%s** passe à **%d** unités.", product.Name, product.Stock), true
	}

	// Admin used a mutation word but nothing parsed: fall through to the
	// read intents ("ajoute" shows up in ordinary sentences too).
	return "", false
}

func mutationFailure(err error, name string) (string, bool) {
	if errors.Is(err, models.ErrProductNotFound) {
		return fmt.Sprintf("Je ne trouve aucun produit nommé \"%s\".", name), true
	}
	return "", false
}

// --- Stock reads ---

func (e *Engine) handleStock(q, _, _ string) (string, bool) {
	products, err := e.dir.ListProducts()
	if err != nil {
		return msgStorageDown, true
	}

	for _, p := range products {
		if p.Name != "" && strings.Contains(q, strings.ToLower(p.Name)) {
			return fmt.Sprintf("Il reste actuellement **%d** unités de **%s**.", p.Stock, p.Name), true
		}
	}

	if strings.Contains(q, "bas") || strings.Contains(q, "alerte") {
		var low []string
		for _, p := range products {
			if p.Stock <= p.SecurityStock {
				low = append(low, fmt.Sprintf("\n- **%s** (%d restants)", p.Name, p.Stock))
			}
		}
		if len(low) == 0 {
			return "Tous les stocks sont corrects ! ✅", true
		}
		return "Attention, les produits suivants sont bas : " + strings.Join(low, ""), true
	}

	return fmt.Sprintf("Vous avez **%d** types de produits en rayon. Pour un produit précis, demandez par exemple \"Stock de Bella\".", len(products)), true
}

// --- Sales reports ---

func (e *Engine) handleReport(q, _, role string) (string, bool) {
	// "mon bilan" only relaxes the permission check; sales carry no
	// seller identity, so the figures stay global either way.
	if role != models.RoleAdmin && !strings.Contains(q, "mon") {
		return msgReportDenied, true
	}

	start, end, label := reportRange(q, e.clock().UTC())
	total, count, err := e.dir.SalesTotalBetween(start, end)
	if err != nil {
		return msgStorageDown, true
	}
	if count == 0 {
		return fmt.Sprintf("Aucune vente enregistrée pour %s.", label), true
	}
	return fmt.Sprintf("Le bilan pour **%s** est de **%s FCFA** (%d ventes).",
		label, strconv.FormatFloat(total, 'f', -1, 64), count), true
}

// reportRange resolves the period a query asks about. All boundaries are
// computed in UTC; the half-open range is [start, end).
func reportRange(q string, now time.Time) (start, end time.Time, label string) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case strings.Contains(q, "hier"):
		return today.AddDate(0, 0, -1), today, "hier"
	case strings.Contains(q, "semaine"):
		// Monday of the current week.
		offset := (int(now.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset), now, "cette semaine"
	case strings.Contains(q, "mois"):
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), now, "ce mois-ci"
	case hasWord(q, "an", "année", "annee"):
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), now, "cette année"
	default:
		return today, now, "aujourd'hui"
	}
}

// hasWord matches whole words only: "an" must not fire inside "bilan".
func hasWord(q string, words ...string) bool {
	fields := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

func matchAny(keywords ...string) func(string) bool {
	return func(q string) bool {
		for _, k := range keywords {
			if strings.Contains(q, k) {
				return true
			}
		}
		return false
	}
}
