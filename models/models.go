package models

// Роли пользователей
const (
	RoleBuyer    = "buyer"
	RoleSupplier = "supplier"
)

// Статусы запроса (переходы только вперёд: pending -> responded -> closed)
const (
	StatusPending   = "pending"
	StatusResponded = "responded"
	StatusClosed    = "closed"
)

// Каталог типов упаковки
var PackagingTypes = []string{
	"boxes", "bottles", "bags", "labels", "cans", "jars",
	"tubes", "pouches", "crates", "pallets", "wrappers",
}

// Каталог материалов
var MaterialTypes = []string{
	"cardboard", "corrugated", "paper", "glass", "plastic", "pet",
	"aluminum", "steel", "wood", "biodegradable", "fabric",
}

// Каталог сертификатов поставщика
var CertificationTypes = []string{
	"iso9001", "iso14001", "fsc", "brc", "fda", "haccp", "gmp", "sedex", "recyclable",
}

var (
	packagingSet     = toSet(PackagingTypes)
	materialSet      = toSet(MaterialTypes)
	certificationSet = toSet(CertificationTypes)
)

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func IsPackagingType(v string) bool { return packagingSet[v] }

func IsMaterialType(v string) bool { return materialSet[v] }

func IsCertificationType(v string) bool { return certificationSet[v] }

func IsRole(v string) bool { return v == RoleBuyer || v == RoleSupplier }

func IsStatus(v string) bool {
	return v == StatusPending || v == StatusResponded || v == StatusClosed
}
