// Package e2e runs the full pipeline (dataset, indexer, bundle, engine)
// over a generated listing corpus with known answers.
package e2e

// CorpusListing is one dataset row in the generated corpus. PriceItems
// carries the JSON array text exactly as a dataset column would.
type CorpusListing struct {
	ID          string
	Name        string
	Location    string
	Rating      float64
	PriceItems  string
	Facilities  string
	Description string
}

// QueryCase pairs a query with listing names that may satisfy it. At least
// one of ExpectedNames must appear in the results.
type QueryCase struct {
	Query         string
	ExpectedNames []string
	Description   string
}

// Corpus holds listings and query cases for the end-to-end tests.
type Corpus struct {
	Listings []CorpusListing
	Cases    []QueryCase
}

// BuildCorpus returns a corpus of listings spread over the gazetteer's
// regions. Every listing carries a signature phrase in its description so
// query cases can assert the right listing surfaces.
func BuildCorpus() *Corpus {
	listings := []CorpusListing{
		{
			ID: "ledok-sambi", Name: "Ledok Sambi Riverside Camp",
			Location: "Kaliurang, Pakem, Sleman, Yogyakarta", Rating: 4.7,
			PriceItems:  `[{"item":"Tiket Masuk","harga":15000},{"item":"Sewa Tenda","harga":60000}]`,
			Facilities:  "Kolam Renang|Toilet|Mushola|Warung",
			Description: "Kemah keluarga tepi sungai dengan flying fox dan kolam renang alami",
		},
		{
			ID: "pinus-pengger", Name: "Hutan Pinus Pengger",
			Location: "Dlingo, Bantul, Yogyakarta", Rating: 4.5,
			PriceItems:  `[{"item":"Tiket Masuk","harga":10000}]`,
			Facilities:  "Toilet|Warung|Spot Foto",
			Description: "Spot foto rumah hobbit dan panggung kayu di hutan pinus",
		},
		{
			ID: "bukit-lintang", Name: "Bukit Lintang Sewu",
			Location: "Muntuk, Dlingo, Bantul", Rating: 4.4,
			PriceItems:  `[{"item":"Tiket Masuk","harga":12500.5}]`,
			Facilities:  "Toilet|Gazebo",
			Description: "Menikmati taburan bintang dan lampu kota dari hammock",
		},
		{
			ID: "nglinggo", Name: "Kebun Teh Nglinggo",
			Location: "Samigaluh, Kulon Progo", Rating: 4.3,
			PriceItems:  `[{"item":"Tiket Masuk","harga":20000}]`,
			Facilities:  "Toilet|Warung",
			Description: "Kemah di kebun teh dengan sunrise perbukitan menoreh",
		},
		{
			ID: "pindul-karst", Name: "Pindul Karst Camp",
			Location: "Bejiharjo, Gunungkidul", Rating: 4.6,
			PriceItems:  `[{"item":"Tiket Masuk","harga":35000}]`,
			Facilities:  "Toilet|Pelampung|Pemandu",
			Description: "Cave tubing menyusuri goa karst dan sungai bawah tanah",
		},
		{
			ID: "kaliadem-merapi", Name: "Kaliadem Merapi Basecamp",
			Location: "Cangkringan, Sleman, Yogyakarta", Rating: 4.2,
			PriceItems:  `[{"item":"Tiket Masuk","harga":25000}]`,
			Facilities:  "Toilet|Warung|Parkir Jeep",
			Description: "Jeep lava tour dan pemandangan puncak merapi",
		},
		{
			ID: "dusun-bambu", Name: "Dusun Bambu Glamping",
			Location: "Cisarua, Lembang, Bandung", Rating: 4.8,
			PriceItems:  `[{"item":"Glamping Dome","harga":150000}]`,
			Facilities:  "Kolam Renang|WiFi|Restoran|Spa",
			Description: "Glamping mewah tepi danau purbasari dengan restoran bambu",
		},
		{
			ID: "ranca-upas", Name: "Ranca Upas Kampung Cai",
			Location: "Ciwidey, Bandung", Rating: 4.5,
			PriceItems:  `[{"item":"Tiket Masuk","harga":30000}]`,
			Facilities:  "Kolam Renang Air Panas|Toilet|Warung",
			Description: "Penangkaran rusa jinak dan pemandian air panas",
		},
		{
			ID: "pineus-tilu", Name: "Pineus Tilu Riverside",
			Location: "Pangalengan, Bandung", Rating: 4.7,
			PriceItems:  `[{"item":"Tenda Keluarga","harga":95000.5}]`,
			Facilities:  "WiFi|Toilet|Kasur|Listrik",
			Description: "Glamping tepi sungai palayangan di antara hutan pinus",
		},
		{
			ID: "sunrise-cukul", Name: "Sunrise Point Cukul",
			Location: "Pangalengan, Bandung", Rating: 4.3,
			PriceItems:  `[{"item":"Tiket Masuk","harga":15000}]`,
			Facilities:  "Toilet|Warung",
			Description: "Lautan kabut pagi di perkebunan teh cukul",
		},
		{
			ID: "ciwidey-valley", Name: "Ciwidey Valley Resort",
			Location: "Rancabali, Ciwidey, Bandung", Rating: 4.4,
			PriceItems:  `[{"item":"Tiket Masuk","harga":45000}]`,
			Facilities:  "Kolam Renang|WiFi|Restoran|Toilet",
			Description: "Kolam renang air hangat dan kebun stroberi petik sendiri",
		},
		{
			ID: "gunung-putri", Name: "Gunung Putri Lembang",
			Location: "Jayagiri, Lembang, Bandung", Rating: 4.1,
			PriceItems:  `[{"item":"Tiket Masuk","harga":17500}]`,
			Facilities:  "Toilet|Warung",
			Description: "Trek ringan ke puncak dengan pemandangan kota bandung",
		},
		{
			ID: "mawar-ungaran", Name: "Mawar Camp Ungaran",
			Location: "Bandungan, Semarang", Rating: 4.4,
			PriceItems:  `[{"item":"Tiket Masuk","harga":15000}]`,
			Facilities:  "Toilet|Warung",
			Description: "Basecamp pendakian gunung ungaran di atas awan",
		},
		{
			ID: "silancur", Name: "Silancur Highland",
			Location: "Kaliangkrik, Magelang", Rating: 4.5,
			PriceItems:  `[{"item":"Tiket Masuk","harga":20000}]`,
			Facilities:  "Toilet|Gazebo|Warung",
			Description: "Panorama gunung sumbing dan lautan awan senja",
		},
		{
			ID: "pangonan-dieng", Name: "Pangonan Hill Dieng",
			Location: "Dieng, Wonosobo", Rating: 4.3,
			PriceItems:  `[{"item":"Tiket Masuk","harga":10000}]`,
			Facilities:  "Toilet",
			Description: "Savana bukit pangonan dekat telaga warna dieng",
		},
		{
			ID: "sekipan", Name: "Bumi Perkemahan Sekipan",
			Location: "Tawangmangu, Karanganyar", Rating: 4.2,
			PriceItems:  `[{"item":"Tiket Masuk","harga":12000}]`,
			Facilities:  "Toilet|Aula|Outbound",
			Description: "Hutan pinus sejuk kaki gunung lawu dengan arena outbound",
		},
		{
			ID: "kemuning-sky", Name: "Kemuning Sky Hills",
			Location: "Ngargoyoso, Karanganyar", Rating: 4.3,
			PriceItems:  `[{"item":"Tiket Masuk","harga":55000}]`,
			Facilities:  "WiFi|Restoran|Toilet",
			Description: "Paralayang tandem di atas kebun teh kemuning",
		},
		{
			ID: "savana-bromo", Name: "Savana Bromo Camp",
			Location: "Probolinggo, Bromo, Jawa Timur", Rating: 4.6,
			PriceItems:  `[{"item":"Paket Kemah","harga":40000}]`,
			Facilities:  "Toilet|Pemandu|Jeep",
			Description: "Sunrise penanjakan dan padang savana bukit teletubbies",
		},
		{
			ID: "coban-rondo", Name: "Coban Rondo Pinewood",
			Location: "Pujon, Malang", Rating: 4.4,
			PriceItems:  `[{"item":"Tiket Masuk","harga":18000}]`,
			Facilities:  "Toilet|Warung|Spot Foto",
			Description: "Air terjun coban rondo dan labirin taman pinus",
		},
		{
			ID: "paralayang-batu", Name: "Paralayang Batu Camp",
			Location: "Gunung Banyak, Batu, Malang", Rating: 4.3,
			PriceItems:  `[{"item":"Tiket Masuk","harga":20000}]`,
			Facilities:  "Toilet|Warung",
			Description: "Terbang tandem paralayang dan lampu kota batu di malam hari",
		},
		{
			ID: "kintamani-lakeview", Name: "Kintamani Lakeview Glamping",
			Location: "Kintamani, Bali", Rating: 4.8,
			PriceItems:  `[{"item":"Glamping Dome","harga":250000}]`,
			Facilities:  "WiFi|Restoran|Kasur|Listrik",
			Description: "Glamping dome menghadap danau batur dan gunung abang",
		},
		{
			ID: "sembalun-rinjani", Name: "Sembalun Rinjani Camp",
			Location: "Sembalun, Lombok", Rating: 4.7,
			PriceItems:  `[{"item":"Paket Kemah","harga":50000}]`,
			Facilities:  "Toilet|Pemandu|Porter",
			Description: "Kaki gunung rinjani dengan padang savana sembalun",
		},
		{
			ID: "gunung-pancar", Name: "Gunung Pancar Hot Spring",
			Location: "Sentul, Bogor", Rating: 4.3,
			PriceItems:  `[{"item":"Tiket Masuk","harga":25000}]`,
			Facilities:  "Kolam Renang Air Panas|Toilet|Warung",
			Description: "Pemandian air panas alami di tengah hutan pinus sentul",
		},
		{
			ID: "tanakita", Name: "Tanakita Five Star Camp",
			Location: "Situgunung, Sukabumi", Rating: 4.8,
			PriceItems:  `[{"item":"Paket Glamping","harga":350000}]`,
			Facilities:  "WiFi|Restoran|Toilet|Api Unggun",
			Description: "Glamping bintang lima dekat jembatan gantung situgunung",
		},
		{
			ID: "curug-cilember", Name: "Curug Cilember Camp",
			Location: "Megamendung, Bogor", Rating: 4.0,
			Facilities:  "Toilet",
			Description: "Tujuh air terjun bertingkat di kaki perbukitan",
		},
	}

	cases := []QueryCase{
		{"flying fox", []string{"Ledok Sambi Riverside Camp"}, "signature activity phrase"},
		{"rumah hobbit", []string{"Hutan Pinus Pengger"}, "signature photo spot"},
		{"cave tubing", []string{"Pindul Karst Camp"}, "signature cave activity"},
		{"lava tour merapi", []string{"Kaliadem Merapi Basecamp"}, "signature jeep tour"},
		{"penangkaran rusa", []string{"Ranca Upas Kampung Cai"}, "signature deer pen"},
		{"kebun stroberi", []string{"Ciwidey Valley Resort"}, "signature strawberry field"},
		{"jembatan gantung", []string{"Tanakita Five Star Camp"}, "signature suspension bridge"},
		{"telaga warna dieng", []string{"Pangonan Hill Dieng"}, "signature lake"},
		{"danau batur", []string{"Kintamani Lakeview Glamping"}, "signature crater lake"},
		{"gunung rinjani", []string{"Sembalun Rinjani Camp"}, "signature mountain"},
		{
			"paralayang",
			[]string{"Paralayang Batu Camp", "Kemuning Sky Hills"},
			"activity shared by two listings",
		},
		{
			"air terjun",
			[]string{"Coban Rondo Pinewood", "Curug Cilember Camp"},
			"waterfall listings",
		},
		{
			"pemandian air panas",
			[]string{"Ranca Upas Kampung Cai", "Gunung Pancar Hot Spring"},
			"hot spring listings",
		},
		{
			"hutan pinus",
			[]string{"Hutan Pinus Pengger", "Pineus Tilu Riverside", "Bumi Perkemahan Sekipan"},
			"pine forest listings",
		},
		{
			"lautan awan",
			[]string{"Silancur Highland"},
			"sea of clouds phrase",
		},
		{
			"kemah jogja",
			[]string{"Ledok Sambi Riverside Camp"},
			"region alias narrows to yogyakarta",
		},
		{
			"glamping di bandung",
			[]string{"Dusun Bambu Glamping", "Pineus Tilu Riverside"},
			"region filter keeps bandung glampings",
		},
		{
			"kolam renang jogja",
			[]string{"Ledok Sambi Riverside Camp"},
			"pool intent plus region alias",
		},
		{
			"wifi bali",
			[]string{"Kintamani Lakeview Glamping"},
			"wifi intent plus region",
		},
		{
			"sunrise kebun teh",
			[]string{"Kebun Teh Nglinggo", "Sunrise Point Cukul", "Kemuning Sky Hills"},
			"tea plantation sunrises",
		},
	}

	return &Corpus{Listings: listings, Cases: cases}
}
