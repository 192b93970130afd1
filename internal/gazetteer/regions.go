package gazetteer

// Regions is the built-in table, centered on the camping areas the listing
// datasets cover. Aliases are matched after normalization, so everything
// here is lowercase ASCII. Place names that double as common nouns ("batu",
// "puncak") are left out: a gazetteer hit removes the token from the
// ranking set, and stripping content words would corrupt scores.
var Regions = []Region{
	{Canonical: "yogyakarta", Aliases: []string{"jogja", "yogya", "jogjakarta", "djogja", "diy"}},
	{Canonical: "sleman"},
	{Canonical: "bantul"},
	{Canonical: "gunungkidul", Aliases: []string{"gunung kidul"}},
	{Canonical: "kulon-progo", Aliases: []string{"kulonprogo"}},
	{Canonical: "kaliurang"},
	{Canonical: "jakarta", Aliases: []string{"dki"}},
	{Canonical: "bandung"},
	{Canonical: "lembang"},
	{Canonical: "ciwidey"},
	{Canonical: "pangalengan"},
	{Canonical: "bogor"},
	{Canonical: "sukabumi"},
	{Canonical: "cianjur"},
	{Canonical: "garut"},
	{Canonical: "kuningan"},
	{Canonical: "majalengka"},
	{Canonical: "semarang"},
	{Canonical: "salatiga"},
	{Canonical: "magelang"},
	{Canonical: "wonosobo"},
	{Canonical: "dieng"},
	{Canonical: "purwokerto"},
	{Canonical: "boyolali"},
	{Canonical: "karanganyar"},
	{Canonical: "tawangmangu"},
	{Canonical: "solo", Aliases: []string{"surakarta"}},
	{Canonical: "malang"},
	{Canonical: "bromo"},
	{Canonical: "bali"},
	{Canonical: "lombok"},
	{Canonical: "jawa-barat", Aliases: []string{"jabar"}},
	{Canonical: "jawa-tengah", Aliases: []string{"jateng"}},
	{Canonical: "jawa-timur", Aliases: []string{"jatim"}},
}
