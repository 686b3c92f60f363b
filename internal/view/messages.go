package view

// User-facing texts. The storefront speaks Arabic only.
const (
	msgConnection        = "خطأ في الاتصال"
	msgProductsLoad      = "خطأ في تحميل المنتجات"
	msgLoginRequired     = "يجب تسجيل الدخول أولاً"
	msgChoosePayment     = "يرجى اختيار طريقة الدفع"
	msgFillRequired      = "يرجى تعبئة جميع الحقول المطلوبة"
	msgAddedToCart       = "تم إضافة %s إلى السلة"
	msgRemovedFromCart   = "تم حذف المنتج من السلة"
	msgCartSaveFailed    = "تعذر حفظ السلة"
	msgOrderPlaced       = "تم إرسال طلبك بنجاح! سيتم التواصل معك قريباً"
	msgOrderFailed       = "خطأ في إرسال الطلب"
	msgAppointmentFailed = "خطأ في حجز الموعد"
	msgLoginOK           = "تم تسجيل الدخول بنجاح"
	msgLoginFailed       = "خطأ في تسجيل الدخول"
	msgSignupOK          = "تم إنشاء الحساب بنجاح"
	msgSignupFailed      = "خطأ في إنشاء الحساب"
	msgLogoutOK          = "تم تسجيل الخروج بنجاح"
	msgNoProducts        = "لا توجد منتجات متاحة"
	msgArticlesLoad      = "خطأ في تحميل المقالات"

	labelAllCategories = "الكل"
	labelChooseDoctor  = "اختاري طبيب"
	labelChooseTime    = "اختاري الوقت"
	labelChoosePayment = "اختاري طريقة الدفع"
	labelGreeting      = "مرحباً، %s"
)
