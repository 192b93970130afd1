package analysis

// IndonesianStopwords is the fixed stop-word set applied at both index and
// query time. The set deliberately sticks to function words: superlative
// markers ("paling") and domain terms stay out because intent detection
// reads them after normalization.
var IndonesianStopwords = []string{
	"ada", "adalah", "agar", "akan", "aku", "anda", "antara", "apa",
	"apakah", "atas", "atau", "bagaimana", "bagi", "bahwa", "banyak",
	"belum", "berapa", "bisa", "bukan", "dalam", "dan", "dapat", "dari",
	"demi", "dengan", "di", "dia", "dimana", "hanya", "harus", "hingga",
	"ia", "ialah", "ini", "itu", "jadi", "jika", "juga", "kalau", "kami",
	"kamu", "karena", "ke", "kepada", "kita", "lagi", "lah", "lain",
	"maka", "mana", "masih", "mau", "melalui", "memang", "mengapa",
	"menjadi", "mereka", "meski", "namun", "oleh", "pada", "para", "per",
	"pun", "saat", "saja", "sama", "sampai", "sangat", "saya", "sebagai",
	"sebuah", "sedang", "sehingga", "sejak", "sekarang", "semua",
	"seperti", "serta", "setelah", "setiap", "siapa", "sini", "situ",
	"suatu", "sudah", "supaya", "tak", "tanpa", "tapi", "telah",
	"tentang", "terhadap", "tersebut", "tetapi", "tiap", "tidak",
	"untuk", "ya", "yaitu", "yakni", "yang",
}
