package constants

// Bureau is one of the Indian credit-information companies whose report
// layouts we know how to parse.
type Bureau string

const (
	Experian Bureau = "EXPERIAN"
	CIBIL    Bureau = "CIBIL"
	CRIF     Bureau = "CRIF"
	Equifax  Bureau = "EQUIFAX"
)

var allBureaus = []Bureau{Experian, CIBIL, CRIF, Equifax}

func BureauNames() []string {
	result := make([]string, len(allBureaus))
	for i, b := range allBureaus {
		result[i] = string(b)
	}
	return result
}
