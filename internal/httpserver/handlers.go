package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"queencare-storefront/internal/domain"
	"queencare-storefront/internal/service/analysis"
	"queencare-storefront/internal/service/appointment"
	"queencare-storefront/internal/view"
)

type addToCartForm struct {
	ProductID int `form:"product_id" binding:"required"`
}

type quantityForm struct {
	Quantity *int `form:"quantity" binding:"required"`
}

type checkoutForm struct {
	PaymentMethod string `form:"payment_method"`
}

type analysisForm struct {
	Age     string   `form:"age"`
	Issues  []string `form:"issues"`
	Routine string   `form:"routine"`
}

type doctorForm struct {
	DoctorID string `form:"doctor_id"`
}

type appointmentForm struct {
	DoctorID      string `form:"doctor_id"`
	Date          string `form:"date"`
	Time          string `form:"time"`
	PaymentMethod string `form:"payment_method"`
	Notes         string `form:"notes"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type signupForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type issueOption struct {
	Value string
	Label string
}

var quizIssues = []issueOption{
	{analysis.IssueOiliness, "دهون زائدة"},
	{analysis.IssueDryness, "جفاف"},
	{analysis.IssueAcne, "حب الشباب"},
	{analysis.IssueDarkSpots, "بقع داكنة"},
	{analysis.IssueWrinkles, "تجاعيد"},
}

// respond finishes a command: JSON clients get the new view model, browsers
// are sent back to the page.
func respond(c *gin.Context, app *view.App) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, app.Page())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func pageHandler(c *gin.Context) {
	app := visitorFrom(c)
	app.Init(c.Request.Context())
	c.HTML(http.StatusOK, "page", app.Page())
}

func viewHandler(c *gin.Context) {
	app := visitorFrom(c)
	app.Init(c.Request.Context())
	c.JSON(http.StatusOK, app.Page())
}

func navigateHandler(c *gin.Context) {
	app := visitorFrom(c)
	app.Navigate(c.Request.Context(), c.Param("id"))
	respond(c, app)
}

func filterHandler(c *gin.Context) {
	app := visitorFrom(c)
	app.FilterProducts(c.Request.Context(), c.Param("category"))
	respond(c, app)
}

func addToCartHandler(c *gin.Context) {
	var form addToCartForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	app := visitorFrom(c)
	app.AddToCart(c.Request.Context(), form.ProductID)
	respond(c, app)
}

func updateQuantityHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var form quantityForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	app := visitorFrom(c)
	app.UpdateQuantity(c.Request.Context(), id, *form.Quantity)
	respond(c, app)
}

func removeFromCartHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	app := visitorFrom(c)
	app.RemoveFromCart(c.Request.Context(), id)
	respond(c, app)
}

func checkoutHandler(c *gin.Context) {
	var form checkoutForm
	_ = c.ShouldBind(&form)
	app := visitorFrom(c)
	app.Checkout(c.Request.Context(), domain.PaymentMethod(form.PaymentMethod))
	respond(c, app)
}

func analysisHandler(c *gin.Context) {
	var form analysisForm
	_ = c.ShouldBind(&form)
	app := visitorFrom(c)
	app.Analyze(c.Request.Context(), form.Issues)
	respond(c, app)
}

func selectDoctorHandler(c *gin.Context) {
	var form doctorForm
	_ = c.ShouldBind(&form)
	id, _ := strconv.Atoi(form.DoctorID)
	app := visitorFrom(c)
	app.SelectDoctor(c.Request.Context(), id)
	respond(c, app)
}

func appointmentHandler(c *gin.Context) {
	var form appointmentForm
	_ = c.ShouldBind(&form)
	doctorID, _ := strconv.Atoi(form.DoctorID)
	app := visitorFrom(c)
	app.BookAppointment(c.Request.Context(), appointment.Input{
		DoctorID:      doctorID,
		Date:          form.Date,
		Time:          form.Time,
		PaymentMethod: domain.PaymentMethod(form.PaymentMethod),
		Notes:         form.Notes,
	})
	respond(c, app)
}

func loginHandler(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	app := visitorFrom(c)
	app.Login(c.Request.Context(), form.Email, form.Password)
	respond(c, app)
}

func signupHandler(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	app := visitorFrom(c)
	app.Signup(c.Request.Context(), form.Name, form.Email, form.Password)
	respond(c, app)
}

func logoutHandler(c *gin.Context) {
	app := visitorFrom(c)
	app.Logout(c.Request.Context())
	respond(c, app)
}

func openModalHandler(c *gin.Context) {
	app := visitorFrom(c)
	app.OpenModal(c.Request.Context(), c.Param("id"))
	respond(c, app)
}

func closeModalHandler(c *gin.Context) {
	app := visitorFrom(c)
	app.CloseModal(c.Request.Context())
	respond(c, app)
}
