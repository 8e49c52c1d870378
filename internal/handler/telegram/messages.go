package telegram

// User-facing reply texts, kept in the product language.
const (
	msgSendLocation  = "🚫 Iltimos, lokatsiyani yuboring."
	msgOutsideOffice = "⚠️ Siz ofis yaqinida emassiz. Iltimos, ofis hududida belgilang."
	msgOnTime        = "✅ Ofisda ekanligingiz tasdiqlandi. Xush kelibsiz!"
	msgBlocked       = "❌ Bu oyda 3 martadan ortiq kechikdingiz."
	msgAskReason     = "⏰ Siz ishga kech qoldingiz. Iltimos, sababni yozing:"
	msgReasonSaved   = "✅ Sabab qabul qilindi va ishga kelish qayd etildi."
	msgCheckedOut    = "👋 Xayr! Ketish vaqtingiz qayd etildi."
	msgFailure       = "⚠️ Xatolik yuz berdi. Iltimos, birozdan so'ng qayta urinib ko'ring."
	msgBadDate       = "🚫 Sana formati noto'g'ri. Namuna: /history 2025-08-31"
	msgNoHistory     = "🔍 Yozuvlar topilmadi."
)

// Reply keyboard labels. checkInKeyword arrives as plain text when the user
// taps the button without granting location access.
const (
	checkInKeyword  = "✅ Kelish"
	checkOutKeyword = "❌ Ketish"
)
